package account

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/rushteam/movietrack/core"
	"github.com/rushteam/movietrack/logging"
)

// DateLayout 是观看日期的格式。
const DateLayout = "2006-01-02"

// Service 实现账户相关操作。每次修改后都会把全部用户写回 Repository。
type Service struct {
	repo    Repository
	catalog core.Catalog
	cost    int
	now     func() time.Time

	mu    sync.Mutex
	users map[string]*User
	order []string
}

// Option 配置 Service。
type Option func(*Service)

// WithBcryptCost 设置 bcrypt 代价，测试里通常用 bcrypt.MinCost。
func WithBcryptCost(cost int) Option {
	return func(s *Service) { s.cost = cost }
}

// WithClock 替换时钟，用于固定观看日期。
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService 创建账户服务，随后需调用 Load 读取已有用户。
func NewService(repo Repository, catalog core.Catalog, opts ...Option) *Service {
	s := &Service{
		repo:    repo,
		catalog: catalog,
		cost:    bcrypt.DefaultCost,
		now:     time.Now,
		users:   make(map[string]*User),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load 从 Repository 读取用户，替换内存中的全部用户。
func (s *Service) Load(ctx context.Context) error {
	users, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load users: %w", err)
	}
	s.SetUsers(users)
	return nil
}

// SetUsers 用已读取的用户替换内存中的全部用户，同名记录只保留第一条。
func (s *Service) SetUsers(users []*User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = make(map[string]*User, len(users))
	s.order = make([]string, 0, len(users))
	for _, u := range users {
		if u == nil || u.Username == "" {
			continue
		}
		if _, ok := s.users[u.Username]; ok {
			logging.Warn().Str("user", u.Username).Msg("duplicate user record ignored")
			continue
		}
		u.ensure()
		s.users[u.Username] = u
		s.order = append(s.order, u.Username)
	}
	logging.Info().Str("repository", s.repo.Name()).Int("users", len(s.order)).Msg("users loaded")
}

// Repository 返回底层仓库。
func (s *Service) Repository() Repository {
	return s.repo
}

// Len 返回用户数量。
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// Lookup 按用户名查找用户（区分大小写）。
func (s *Service) Lookup(username string) (*User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[strings.TrimSpace(username)]
	return u, ok
}

// CreateAccount 创建账户。用户名去除首尾空白后不能为空且不能重复；
// 密码 5 到 14 个字符，且与确认密码一致。
func (s *Service) CreateAccount(ctx context.Context, username, password, confirm string) (*User, error) {
	c := credentials{Username: strings.TrimSpace(username), Password: password, Confirm: confirm}
	verr := c.check()
	if errors.Is(verr, ErrEmptyUsername) {
		return nil, verr
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[c.Username]; ok {
		return nil, ErrUsernameTaken
	}
	if verr != nil {
		return nil, verr
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(c.Password), s.cost)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleAccount, core.ErrorCodeInternalError, fmt.Sprintf("hash password: %v", err))
	}
	u := NewUser(c.Username, string(hash))
	s.users[u.Username] = u
	s.order = append(s.order, u.Username)

	logging.Info().Str("user", u.Username).Msg("account created")
	return u, s.saveLocked(ctx)
}

// Login 校验用户名和密码。
func (s *Service) Login(ctx context.Context, username, password string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[strings.TrimSpace(username)]
	if !ok {
		return nil, ErrUserNotFound
	}
	if !s.verifyLocked(ctx, u, password) {
		logging.Info().Str("user", u.Username).Msg("login rejected")
		return nil, ErrWrongPassword
	}
	logging.Info().Str("user", u.Username).Msg("login succeeded")
	return u, nil
}

// VerifyPassword 校验 u 的密码，旧版明文密码校验通过后会升级为 bcrypt。
func (s *Service) VerifyPassword(ctx context.Context, u *User, password string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.verifyLocked(ctx, u, password)
}

// ChangePassword 校验当前密码后设置新密码。
func (s *Service) ChangePassword(ctx context.Context, u *User, current, password, confirm string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.verifyLocked(ctx, u, current) {
		return ErrCurrentPassword
	}
	c := credentials{Username: u.Username, Password: password, Confirm: confirm}
	if err := c.check(); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return core.NewDomainError(core.ModuleAccount, core.ErrorCodeInternalError, fmt.Sprintf("hash password: %v", err))
	}
	u.PasswordHash = string(hash)
	logging.Info().Str("user", u.Username).Msg("password changed")
	return s.saveLocked(ctx)
}

// AddToWatchlist 把目录中的影片加入待看列表，返回该影片。
// 已在列表中时返回影片和 ErrAlreadyInWatchlist。
func (s *Service) AddToWatchlist(ctx context.Context, u *User, id string) (*core.Movie, error) {
	m, ok := s.movie(id)
	if !ok {
		return nil, ErrMovieNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u.ensure()
	if !u.Watchlist.Add(m.ID) {
		return m, ErrAlreadyInWatchlist
	}
	return m, s.saveLocked(ctx)
}

// RemoveFromWatchlist 从待看列表移除影片。影片不必仍在目录中；
// 返回的影片可能为 nil。
func (s *Service) RemoveFromWatchlist(ctx context.Context, u *User, id string) (*core.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.ensure()
	if u.Watchlist.Len() == 0 {
		return nil, ErrWatchlistEmpty
	}
	if !u.Watchlist.Remove(id) {
		return nil, ErrNotInWatchlist
	}
	m, _ := s.movie(id)
	return m, s.saveLocked(ctx)
}

// MarkWatched 以今天的日期记录观看，并移出待看列表。返回影片与日期。
func (s *Service) MarkWatched(ctx context.Context, u *User, id string) (*core.Movie, string, error) {
	m, ok := s.movie(id)
	if !ok {
		return nil, "", ErrMovieNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	date := s.now().Format(DateLayout)
	u.MarkWatched(m.ID, date)
	return m, date, s.saveLocked(ctx)
}

// Save 把全部用户写回 Repository。
func (s *Service) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(ctx)
}

func (s *Service) saveLocked(ctx context.Context) error {
	users := make([]*User, 0, len(s.order))
	for _, name := range s.order {
		users = append(users, s.users[name])
	}
	if err := s.repo.Save(ctx, users); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}

// verifyLocked 校验密码。非 bcrypt 格式的旧记录按明文比较，通过后升级为哈希。
func (s *Service) verifyLocked(ctx context.Context, u *User, password string) bool {
	if u == nil || u.PasswordHash == "" {
		return false
	}
	if isBcryptHash(u.PasswordHash) {
		return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
	}
	if subtle.ConstantTimeCompare([]byte(u.PasswordHash), []byte(password)) != 1 {
		return false
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		logging.Warn().Err(err).Str("user", u.Username).Msg("password upgrade skipped")
		return true
	}
	u.PasswordHash = string(hash)
	if err := s.saveLocked(ctx); err != nil {
		logging.Warn().Err(err).Str("user", u.Username).Msg("persist upgraded password")
	}
	return true
}

func (s *Service) movie(id string) (*core.Movie, bool) {
	if s.catalog == nil {
		return nil, false
	}
	return s.catalog.Get(strings.TrimSpace(id))
}

func isBcryptHash(h string) bool {
	_, err := bcrypt.Cost([]byte(h))
	return err == nil
}
