package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rushteam/movietrack/core"
	"github.com/rushteam/movietrack/logging"
)

// 目录 CSV 的列：id,title,genre,year,rating
const (
	colID = iota
	colTitle
	colGenre
	colYear
	colRating
	numCols
)

// LoadFile 从 CSV 文件加载目录。文件不存在或无法读取时返回 NOT_FOUND/INTERNAL 领域错误。
func LoadFile(path string) (*Library, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeNotFound,
				fmt.Sprintf("movie file %s not found", path))
		}
		return nil, fmt.Errorf("open movie file: %w", err)
	}
	defer f.Close()

	lib, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	logging.Info().Str("path", path).Int("movies", lib.Len()).Msg("catalog loaded")
	return lib, nil
}

// Parse 解析目录 CSV。
//
//   - 首行第一列为 "id"（大小写无关）时视为表头
//   - 空行跳过
//   - 列数不足、年份或评分无法解析、ID 为空的行记录警告后跳过
//   - ID 重复时保留第一条
func Parse(r io.Reader) (*Library, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	lib := NewLibrary()
	first := true
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				logging.Warn().Err(err).Int("line", perr.Line).Msg("skip unreadable movie row")
				continue
			}
			return nil, err
		}
		line, _ := reader.FieldPos(0)

		if first {
			first = false
			if len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "id") {
				continue
			}
		}
		if isBlank(record) {
			continue
		}

		m, err := parseMovie(record)
		if err != nil {
			logging.Warn().Err(err).Int("line", line).Msg("skip malformed movie row")
			continue
		}
		if !lib.add(m) {
			logging.Warn().Str("id", m.ID).Int("line", line).Msg("skip duplicate movie id")
		}
	}
	return lib, nil
}

func parseMovie(record []string) (*core.Movie, error) {
	if len(record) < numCols {
		return nil, fmt.Errorf("want %d columns, got %d", numCols, len(record))
	}
	id := core.CanonicalID(strings.TrimSpace(record[colID]))
	if id == "" {
		return nil, errors.New("empty movie id")
	}
	year, err := strconv.Atoi(strings.TrimSpace(record[colYear]))
	if err != nil {
		return nil, fmt.Errorf("year: %w", err)
	}
	rating, err := strconv.ParseFloat(strings.TrimSpace(record[colRating]), 64)
	if err != nil {
		return nil, fmt.Errorf("rating: %w", err)
	}
	return &core.Movie{
		ID:     id,
		Title:  strings.TrimSpace(record[colTitle]),
		Genre:  strings.TrimSpace(record[colGenre]),
		Year:   year,
		Rating: rating,
	}, nil
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
