package account

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rushteam/movietrack/logging"
)

// 用户 CSV：username,password_hash,watchlist,history
// watchlist 形如 ID;ID，history 形如 ID@DATE;ID@DATE。
const (
	listSep    = ";"
	historySep = "@"
)

// CSVRepository 把用户保存在一个 CSV 文件中。
type CSVRepository struct {
	Path string
}

func NewCSVRepository(path string) *CSVRepository {
	return &CSVRepository{Path: path}
}

func (r *CSVRepository) Name() string { return "csv" }

// Load 读取用户文件。文件不存在时视为没有用户。
func (r *CSVRepository) Load(_ context.Context) ([]*User, error) {
	f, err := os.Open(r.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Info().Str("path", r.Path).Msg("user file not found, starting empty")
			return []*User{}, nil
		}
		return nil, fmt.Errorf("open user file: %w", err)
	}
	defer f.Close()
	return decodeUsersCSV(f)
}

func decodeUsersCSV(rd io.Reader) ([]*User, error) {
	reader := csv.NewReader(rd)
	reader.FieldsPerRecord = -1

	users := make([]*User, 0)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read user file: %w", err)
		}
		line, _ := reader.FieldPos(0)
		if len(record) < 2 || strings.TrimSpace(record[0]) == "" {
			logging.Warn().Int("line", line).Msg("skip malformed user row")
			continue
		}

		u := NewUser(strings.TrimSpace(record[0]), record[1])
		if len(record) > 2 {
			for _, id := range splitList(record[2]) {
				u.Watchlist.Add(id)
			}
		}
		if len(record) > 3 {
			for _, item := range splitList(record[3]) {
				id, date, ok := strings.Cut(item, historySep)
				if !ok {
					logging.Warn().Int("line", line).Str("entry", item).Msg("skip malformed history entry")
					continue
				}
				u.History.Add(id, date)
			}
		}
		users = append(users, u)
	}
	return users, nil
}

// Save 先写临时文件再 rename，写入中途失败不会损坏原文件。
func (r *CSVRepository) Save(_ context.Context, users []*User) error {
	dir := filepath.Dir(r.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create user dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(r.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp user file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := encodeUsersCSV(tmp, users); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp user file: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.Path); err != nil {
		return fmt.Errorf("replace user file: %w", err)
	}
	logging.Debug().Str("path", r.Path).Int("users", len(users)).Msg("users saved")
	return nil
}

func encodeUsersCSV(w io.Writer, users []*User) error {
	cw := csv.NewWriter(w)
	for _, u := range users {
		if u == nil {
			continue
		}
		u.ensure()
		history := make([]string, 0, u.History.Len())
		for _, h := range u.History.Entries() {
			history = append(history, h.MovieID+historySep+h.WatchedDate)
		}
		record := []string{
			u.Username,
			u.PasswordHash,
			strings.Join(u.Watchlist.Items(), listSep),
			strings.Join(history, listSep),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write user %s: %w", u.Username, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, listSep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

var _ Repository = (*CSVRepository)(nil)
