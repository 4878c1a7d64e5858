package durations

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var (
	ErrNoHeader   = errors.New("duration source has no header row")
	ErrNoKeyField = errors.New("duration source has no usable key columns")
)

// Record is a single authoritative track entry. Records are immutable after
// load; the whole index is swapped atomically on reload.
type Record struct {
	Shortname string
	Artist    string
	Title     string
	Album     string
	Year      int
	Seconds   int // 0 when the duration text could not be parsed
}

type artistTitle struct {
	artist string
	title  string
}

// Index maps songs to authoritative track lengths. Shortname lookups are
// exact; (artist, title) lookups are case-insensitive. Safe for concurrent
// readers with a single writer.
type Index struct {
	logger *zap.Logger

	mutex         sync.RWMutex
	byShortname   map[string]Record
	byArtistTitle map[artistTitle]Record
	count         int
}

func NewIndex(logger *zap.Logger) *Index {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Index{
		logger:        logger.Named("durations"),
		byShortname:   make(map[string]Record),
		byArtistTitle: make(map[artistTitle]Record),
	}
}

// Load reads a CSV duration source from disk and replaces the index contents.
// On failure the previous contents are kept. Returns the number of records
// loaded.
func (i *Index) Load(path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, errors.Wrap(err, "failed to open duration source")
	}
	defer file.Close()
	return i.LoadReader(file)
}

// LoadReader is Load for an arbitrary source.
func (i *Index) LoadReader(r io.Reader) (int, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return 0, errors.Wrap(err, "failed to read duration source")
	}

	text, err := decodeText(raw)
	if err != nil {
		return 0, errors.Wrap(err, "failed to decode duration source")
	}

	records, err := parseRecords(text)
	if err != nil {
		return 0, err
	}

	byShortname := make(map[string]Record, len(records))
	byArtistTitle := make(map[artistTitle]Record, len(records))
	for _, record := range records {
		if record.Shortname != "" {
			byShortname[record.Shortname] = record
		}
		if record.Artist != "" && record.Title != "" {
			byArtistTitle[artistTitleKey(record.Artist, record.Title)] = record
		}
	}

	i.mutex.Lock()
	i.byShortname = byShortname
	i.byArtistTitle = byArtistTitle
	i.count = len(records)
	i.mutex.Unlock()

	i.logger.Info("duration index loaded", zap.Int("records", len(records)))
	return len(records), nil
}

// Clear drops all records.
func (i *Index) Clear() {
	i.mutex.Lock()
	i.byShortname = make(map[string]Record)
	i.byArtistTitle = make(map[artistTitle]Record)
	i.count = 0
	i.mutex.Unlock()
}

func (i *Index) Len() int {
	i.mutex.RLock()
	defer i.mutex.RUnlock()
	return i.count
}

// Lookup returns the authoritative duration in seconds. Shortname match wins;
// otherwise the case-insensitive (artist, title) pair is tried. No fuzzy
// matching.
func (i *Index) Lookup(shortname, artist, title string) (int, bool) {
	record, ok := i.Get(shortname, artist, title)
	if !ok || record.Seconds <= 0 {
		return 0, false
	}
	return record.Seconds, true
}

// Get returns the whole record behind a Lookup.
func (i *Index) Get(shortname, artist, title string) (Record, bool) {
	i.mutex.RLock()
	defer i.mutex.RUnlock()

	if shortname != "" {
		if record, ok := i.byShortname[shortname]; ok {
			return record, true
		}
	}
	if artist != "" && title != "" {
		if record, ok := i.byArtistTitle[artistTitleKey(artist, title)]; ok {
			return record, true
		}
	}
	return Record{}, false
}

func artistTitleKey(artist, title string) artistTitle {
	return artistTitle{
		artist: strings.ToLower(strings.TrimSpace(artist)),
		title:  strings.ToLower(strings.TrimSpace(title)),
	}
}

func parseRecords(text string) ([]Record, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, ErrNoHeader
	}

	columns := mapColumns(header)
	if columns.shortname < 0 && (columns.artist < 0 || columns.title < 0) {
		return nil, ErrNoKeyField
	}

	var records []Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A malformed row does not abort the load.
			continue
		}

		record := Record{
			Shortname: field(row, columns.shortname),
			Artist:    field(row, columns.artist),
			Title:     field(row, columns.title),
			Album:     field(row, columns.album),
		}
		if year, err := strconv.Atoi(field(row, columns.year)); err == nil {
			record.Year = year
		}
		if seconds, ok := ParseDuration(field(row, columns.duration)); ok {
			record.Seconds = seconds
		}

		if record.Shortname == "" && record.Artist == "" && record.Title == "" {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

type columnMap struct {
	shortname int
	artist    int
	title     int
	duration  int
	album     int
	year      int
}

func mapColumns(header []string) columnMap {
	columns := columnMap{shortname: -1, artist: -1, title: -1, duration: -1, album: -1, year: -1}
	for index, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "shortname", "short_name", "short name":
			columns.shortname = index
		case "artist":
			columns.artist = index
		case "title", "name", "song", "song name":
			columns.title = index
		case "duration", "length", "song length", "time":
			columns.duration = index
		case "album", "album name":
			columns.album = index
		case "year", "year released":
			columns.year = index
		}
	}
	return columns
}

func field(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}
