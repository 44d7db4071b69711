package files

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Format is the on-disk format of an input file
type Format string

const (
	FormatDelimited Format = "delimited"
	FormatExcel     Format = "excel"
)

var delimitedExtensions = map[string]bool{".csv": true, ".tsv": true, ".txt": true}

// DetectFormat picks the reader from the file extension
func DetectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case delimitedExtensions[ext]:
		return FormatDelimited, nil
	case ext == ".xlsx" || ext == ".xlsm":
		return FormatExcel, nil
	}
	return "", fmt.Errorf("unsupported input extension %q", ext)
}

// rawTable is a header row and data rows exactly as read
type rawTable struct {
	header []string
	rows   [][]string
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// delimiterCandidates are tried in order; earlier entries win ties
var delimiterCandidates = []rune{',', '\t', ';', '|'}

// SniffDelimiter picks the candidate that occurs most often in the first
// non-empty line, defaulting to a comma.
func SniffDelimiter(data []byte) rune {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var line string
	for scanner.Scan() {
		if l := strings.TrimSpace(scanner.Text()); l != "" {
			line = scanner.Text()
			break
		}
	}

	best, bestCount := ',', 0
	for _, c := range delimiterCandidates {
		if n := strings.Count(line, string(c)); n > bestCount {
			best, bestCount = c, n
		}
	}
	return best
}

// readDelimited reads a delimited text file with a sniffed delimiter
func readDelimited(path string) (rawTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return rawTable{}, err
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = SniffDelimiter(data)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return rawTable{}, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return splitHeader(records), nil
}

// readExcel reads one worksheet, the first when sheet is empty
func readExcel(path, sheet string) (rawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return rawTable{}, err
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return rawTable{}, fmt.Errorf("workbook %s has no sheets", filepath.Base(path))
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return rawTable{}, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return splitHeader(rows), nil
}

// splitHeader takes the first non-blank row as the header and drops blank data rows
func splitHeader(records [][]string) rawTable {
	var t rawTable
	for _, rec := range records {
		if blankRow(rec) {
			continue
		}
		if t.header == nil {
			t.header = rec
			continue
		}
		t.rows = append(t.rows, rec)
	}
	return t
}

func blankRow(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func readRaw(path, sheet string) (rawTable, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return rawTable{}, err
	}
	if format == FormatExcel {
		return readExcel(path, sheet)
	}
	return readDelimited(path)
}
