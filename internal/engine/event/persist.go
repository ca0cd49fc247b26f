package event

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/inkstone-edit/inkstone/internal/engine/cursor"
)

// Logs persist as JSON Lines: one entry per line, a "kind" field
// selecting the event type and the remaining fields flattened in.

// MarshalEntry encodes a single entry as one JSON line, without the
// trailing newline.
func MarshalEntry(e Entry) (string, error) {
	line, _ := sjson.Set("", "kind", string(e.Event.Kind()))
	line, _ = sjson.Set(line, "ts", e.Timestamp)
	if e.Description != "" {
		line, _ = sjson.Set(line, "desc", e.Description)
	}

	switch ev := e.Event.(type) {
	case Insert:
		line, _ = sjson.Set(line, "position", ev.Position)
		line, _ = sjson.Set(line, "text", ev.Text)
		line, _ = sjson.Set(line, "cursor", uint64(ev.Cursor))
	case Delete:
		line, _ = sjson.Set(line, "start", ev.Start)
		line, _ = sjson.Set(line, "end", ev.End)
		line, _ = sjson.Set(line, "deleted_text", ev.DeletedText)
		line, _ = sjson.Set(line, "cursor", uint64(ev.Cursor))
	case MoveCursor:
		line, _ = sjson.Set(line, "cursor", uint64(ev.Cursor))
		line, _ = sjson.Set(line, "position", ev.Position)
		if ev.Anchor != nil {
			line, _ = sjson.Set(line, "anchor", *ev.Anchor)
		}
	case AddCursor:
		line, _ = sjson.Set(line, "cursor", uint64(ev.Cursor))
		line, _ = sjson.Set(line, "position", ev.Position)
		if ev.Anchor != nil {
			line, _ = sjson.Set(line, "anchor", *ev.Anchor)
		}
	case RemoveCursor:
		line, _ = sjson.Set(line, "cursor", uint64(ev.Cursor))
	case Scroll:
		line, _ = sjson.Set(line, "line_offset", ev.LineOffset)
	case SetViewport:
		line, _ = sjson.Set(line, "top_line", ev.TopLine)
	case ChangeMode:
		line, _ = sjson.Set(line, "mode", ev.Mode)
	default:
		return "", fmt.Errorf("event: cannot marshal kind %q", e.Event.Kind())
	}
	return line, nil
}

// UnmarshalEntry decodes one JSON line into an entry.
func UnmarshalEntry(line string) (Entry, error) {
	if !gjson.Valid(line) {
		return Entry{}, fmt.Errorf("event: invalid JSON line")
	}
	doc := gjson.Parse(line)
	entry := Entry{
		Timestamp:   doc.Get("ts").Int(),
		Description: doc.Get("desc").String(),
	}

	kind := Kind(doc.Get("kind").String())
	switch kind {
	case KindInsert:
		entry.Event = Insert{
			Position: int(doc.Get("position").Int()),
			Text:     doc.Get("text").String(),
			Cursor:   cursor.ID(doc.Get("cursor").Uint()),
		}
	case KindDelete:
		entry.Event = Delete{
			Start:       int(doc.Get("start").Int()),
			End:         int(doc.Get("end").Int()),
			DeletedText: doc.Get("deleted_text").String(),
			Cursor:      cursor.ID(doc.Get("cursor").Uint()),
		}
	case KindMoveCursor:
		entry.Event = MoveCursor{
			Cursor:   cursor.ID(doc.Get("cursor").Uint()),
			Position: int(doc.Get("position").Int()),
			Anchor:   optionalInt(doc, "anchor"),
		}
	case KindAddCursor:
		entry.Event = AddCursor{
			Cursor:   cursor.ID(doc.Get("cursor").Uint()),
			Position: int(doc.Get("position").Int()),
			Anchor:   optionalInt(doc, "anchor"),
		}
	case KindRemoveCursor:
		entry.Event = RemoveCursor{Cursor: cursor.ID(doc.Get("cursor").Uint())}
	case KindScroll:
		entry.Event = Scroll{LineOffset: int(doc.Get("line_offset").Int())}
	case KindSetViewport:
		entry.Event = SetViewport{TopLine: int(doc.Get("top_line").Int())}
	case KindChangeMode:
		entry.Event = ChangeMode{Mode: doc.Get("mode").String()}
	default:
		return Entry{}, fmt.Errorf("event: unknown kind %q", kind)
	}
	return entry, nil
}

func optionalInt(doc gjson.Result, key string) *int {
	v := doc.Get(key)
	if !v.Exists() {
		return nil
	}
	n := int(v.Int())
	return &n
}

// SaveFile writes every entry of the log to path as JSON Lines.
func (l *Log) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("event: create log file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, e := range l.Entries() {
		line, err := MarshalEntry(e)
		if err != nil {
			return err
		}
		if _, err := w.WriteString(line + "\n"); err != nil {
			return fmt.Errorf("event: write log file: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("event: flush log file: %w", err)
	}
	return f.Sync()
}

// LoadFile reads a JSON Lines log from path. The returned log's
// current position is at the end, as if every entry had just been
// applied. Blank lines are skipped.
func LoadFile(path string) (*Log, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("event: open log file: %w", err)
	}
	defer f.Close()

	log := NewLog()
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		entry, err := UnmarshalEntry(line)
		if err != nil {
			return nil, fmt.Errorf("event: line %d: %w", lineNo, err)
		}
		log.entries = append(log.entries, entry)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("event: read log file: %w", err)
	}
	log.currentIndex = len(log.entries)
	return log, nil
}
