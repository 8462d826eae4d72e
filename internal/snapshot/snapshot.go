// Package snapshot reads the bundled offline POI dataset: a gzip-compressed
// file of line-delimited JSON records exported from OpenStreetMap.
package snapshot

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/hoffmann/waykit/internal/models"
)

// ErrDatasetCorrupt reports unparsable snapshot content. Loading tolerates
// individual bad lines, so this is only returned when no record survived.
var ErrDatasetCorrupt = errors.New("snapshot dataset corrupt")

// maxLineBytes bounds a single snapshot line; OSM rows are far smaller.
const maxLineBytes = 1 << 20

// Read parses line-delimited JSON records from r. Blank lines are skipped.
// Lines that fail to parse are logged with their line number, counted, and
// skipped; the count is returned alongside the surviving records. Only when
// at least one line was corrupt and nothing parsed does Read fail with
// ErrDatasetCorrupt.
func Read(r io.Reader) ([]models.POI, int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var pois []models.POI
	corrupt := 0
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var row models.SnapshotRow
		if err := json.Unmarshal([]byte(line), &row); err != nil {
			log.Printf("Skipping corrupt snapshot line %d: %v", lineNo, err)
			corrupt++
			continue
		}
		poi, err := row.ToPOI()
		if err != nil {
			log.Printf("Skipping invalid snapshot line %d: %v", lineNo, err)
			corrupt++
			continue
		}
		pois = append(pois, poi)
	}
	if err := scanner.Err(); err != nil {
		return nil, corrupt, fmt.Errorf("%w: read failed at line %d: %v", ErrDatasetCorrupt, lineNo, err)
	}
	if corrupt > 0 && len(pois) == 0 {
		return nil, corrupt, fmt.Errorf("%w: all %d lines unparsable", ErrDatasetCorrupt, corrupt)
	}
	return pois, corrupt, nil
}

// ReadFile loads a snapshot from disk. Files ending in .gz are decompressed
// transparently; anything else is read as plain JSONL.
func ReadFile(path string) ([]models.POI, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open snapshot %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %s is not valid gzip: %v", ErrDatasetCorrupt, path, err)
		}
		defer gz.Close()
		r = gz
	}

	pois, corrupt, err := Read(r)
	if err != nil {
		return nil, corrupt, fmt.Errorf("snapshot %s: %w", path, err)
	}
	return pois, corrupt, nil
}
