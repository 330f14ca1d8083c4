// Package snippet loads snippet books and selects study items.
package snippet

import (
	"bufio"
	"fmt"
	"hash/fnv"
	"os"
	"strings"

	"github.com/sin1227488801/rct/internal/model"
)

// Separator splits snippets inside a book file.
const Separator = "%%"

const tabWidth = 4

// LoadBook reads the snippet book for one language. Snippets are separated
// by lines containing only "%%"; a first line starting with "# " names the
// snippet. Tabs are normalized to spaces so every target rune is typeable.
func LoadBook(path, lang string) ([]model.StudyItem, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only book.
			_ = cerr
		}
	}()

	var items []model.StudyItem
	var block []string
	flush := func() {
		item, ok := buildItem(block, lang)
		if ok {
			items = append(items, item)
		}
		block = block[:0]
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == Separator {
			flush()
			continue
		}
		block = append(block, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()

	if len(items) == 0 {
		return nil, fmt.Errorf("snippet book is empty")
	}
	return items, nil
}

func buildItem(block []string, lang string) (model.StudyItem, bool) {
	title := ""
	lines := block
	if len(lines) > 0 && strings.HasPrefix(strings.TrimSpace(lines[0]), "# ") {
		title = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(lines[0]), "# "))
		lines = lines[1:]
	}
	normalized := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.ReplaceAll(line, "\t", strings.Repeat(" ", tabWidth))
		normalized = append(normalized, strings.TrimRight(line, " "))
	}
	text := strings.TrimRight(strings.TrimLeft(strings.Join(normalized, "\n"), "\n"), "\n")
	if strings.TrimSpace(text) == "" {
		return model.StudyItem{}, false
	}
	if title == "" {
		title = firstLineTitle(text)
	}
	return model.StudyItem{
		ID:    itemID(lang, text),
		Lang:  lang,
		Title: title,
		Text:  text,
	}, true
}

func firstLineTitle(text string) string {
	line := text
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}
	runes := []rune(strings.TrimSpace(line))
	if len(runes) > 40 {
		return string(runes[:40]) + "..."
	}
	return string(runes)
}

// itemID derives a stable identity from the snippet content, so editing one
// snippet never shifts the history of the others.
func itemID(lang, text string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(lang))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(text))
	return fmt.Sprintf("%s-%016x", lang, h.Sum64())
}
