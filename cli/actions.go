package cli

import (
	"context"
	"errors"
	"strconv"

	"github.com/rushteam/movietrack/account"
	"github.com/rushteam/movietrack/core"
	"github.com/rushteam/movietrack/rank"
	"github.com/rushteam/movietrack/rerank"
)

func (s *Session) login(ctx context.Context) error {
	username, err := s.ask("Username: ")
	if err != nil {
		return err
	}
	if _, ok := s.accounts.Lookup(username); !ok {
		s.report(account.ErrUserNotFound)
		return nil
	}
	password, err := s.ask("Password: ")
	if err != nil {
		return err
	}
	u, err := s.accounts.Login(ctx, username, password)
	if err != nil {
		s.report(err)
		return nil
	}
	s.user = u
	s.success("Login successful!")
	return nil
}

func (s *Session) createAccount(ctx context.Context) error {
	s.heading("--- Create Account ---")
	username, err := s.ask("Choose a username: ")
	if err != nil {
		return err
	}
	if username == "" {
		s.report(account.ErrEmptyUsername)
		return nil
	}
	if _, ok := s.accounts.Lookup(username); ok {
		s.report(account.ErrUsernameTaken)
		return nil
	}
	password, err := s.ask("Choose a password (5-14 characters): ")
	if err != nil {
		return err
	}
	if n := len([]rune(password)); n < 5 || n > 14 {
		s.report(account.ErrPasswordLength)
		return nil
	}
	confirm, err := s.ask("Confirm password: ")
	if err != nil {
		return err
	}
	if _, err := s.accounts.CreateAccount(ctx, username, password, confirm); err != nil {
		s.report(err)
		return nil
	}
	s.success("Account created. You can now log in.")
	return nil
}

func (s *Session) browse() {
	s.heading("--- All Movies ---")
	for _, m := range s.catalog.All() {
		s.println("%s", m.ShortDescription())
	}
}

func (s *Session) addToWatchlist(ctx context.Context) error {
	id, err := s.ask("Enter movie ID to add: ")
	if err != nil {
		return err
	}
	m, err := s.accounts.AddToWatchlist(ctx, s.user, id)
	switch {
	case errors.Is(err, account.ErrAlreadyInWatchlist):
		s.println("%s (%d) is already in your watchlist.", m.Title, m.Year)
	case err != nil:
		s.report(err)
	default:
		s.success("%s (%d) is added to your watchlist.", m.Title, m.Year)
	}
	return nil
}

func (s *Session) removeFromWatchlist(ctx context.Context) error {
	if s.user.Watchlist.Len() == 0 {
		s.report(account.ErrWatchlistEmpty)
		return nil
	}
	id, err := s.ask("Enter movie ID to remove: ")
	if err != nil {
		return err
	}
	m, err := s.accounts.RemoveFromWatchlist(ctx, s.user, id)
	switch {
	case err != nil:
		s.report(err)
	case m != nil:
		s.success("%s (%d) is removed from your watchlist.", m.Title, m.Year)
	default:
		s.success("%s is removed from your watchlist.", core.CanonicalID(id))
	}
	return nil
}

func (s *Session) viewWatchlist() {
	items := s.user.Watchlist.Items()
	if len(items) == 0 {
		s.println("Watchlist is empty.")
		return
	}
	s.heading("--- Your Watchlist ---")
	for _, id := range items {
		if m, ok := s.catalog.Get(id); ok {
			s.println("%s", m.ShortDescription())
		} else {
			s.println("%s", id)
		}
	}
}

func (s *Session) markWatched(ctx context.Context) error {
	id, err := s.ask("Enter movie ID watched: ")
	if err != nil {
		return err
	}
	m, date, err := s.accounts.MarkWatched(ctx, s.user, id)
	if err != nil {
		s.report(err)
		return nil
	}
	s.success("Marked %s (%d) as watched on %s.", m.Title, m.Year, date)
	return nil
}

func (s *Session) viewHistory() {
	entries := s.user.History.Entries()
	if len(entries) == 0 {
		s.println("History is empty.")
		return
	}
	s.heading("--- Viewing History ---")
	for i, h := range entries {
		if m, ok := s.catalog.Get(h.MovieID); ok {
			s.println("%d. %s - %s (%d) on %s", i+1, m.ID, m.Title, m.Year, h.WatchedDate)
		} else {
			s.println("%d. %s on %s", i+1, h.MovieID, h.WatchedDate)
		}
	}
}

// changePassword 当前密码错误时立即返回，不再询问新密码。
func (s *Session) changePassword(ctx context.Context) error {
	current, err := s.ask("Enter current password: ")
	if err != nil {
		return err
	}
	if !s.accounts.VerifyPassword(ctx, s.user, current) {
		s.report(account.ErrCurrentPassword)
		return nil
	}
	next, err := s.ask("Enter new password: ")
	if err != nil {
		return err
	}
	confirm, err := s.ask("Confirm new password: ")
	if err != nil {
		return err
	}
	if err := s.accounts.ChangePassword(ctx, s.user, current, next, confirm); err != nil {
		s.report(err)
		return nil
	}
	s.success("Password updated.")
	return nil
}

// recommend 依次询问类型、排序方式和数量，三者都会重复询问直到输入有效。
func (s *Session) recommend(ctx context.Context) error {
	genres := s.engine.ListGenres(s.catalog)
	s.println("")
	s.heading("--- Choose Genre ---")
	for i, g := range genres {
		s.println("%d. %s", i+1, g)
	}
	s.println("%d. All", len(genres)+1)

	choice, err := s.askNumber("Enter choice: ", 1, len(genres)+1)
	if err != nil {
		return err
	}
	genre := ""
	if choice <= len(genres) {
		genre = genres[choice-1]
	}

	policies := rank.Policies()
	s.println("")
	s.heading("--- Sort Options ---")
	for i, p := range policies {
		s.println("%d. %s", i+1, p.Describe())
	}
	choice, err = s.askNumber("Enter choice: ", 1, len(policies))
	if err != nil {
		return err
	}
	policy := policies[choice-1]

	count, err := s.askNumber("How many recommendations? (max 10): ", 1, rerank.MaxCount)
	if err != nil {
		return err
	}

	recs := s.engine.Recommend(ctx, s.user, s.catalog, genre, string(policy), count)
	if len(recs) == 0 {
		s.println("No recommendations available.")
		return nil
	}
	s.println("")
	s.heading("--- Recommendations ---")
	for i, m := range recs {
		s.println("%d. %s", i+1, m.ShortDescription())
	}
	s.println("Found %d matching item(s).", len(recs))
	return nil
}

// askNumber 读取 [lo, hi] 内的整数，无效输入提示后重新询问。
func (s *Session) askNumber(prompt string, lo, hi int) (int, error) {
	for {
		text, err := s.ask(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(text)
		if err != nil {
			s.fail("Please enter a valid number.")
			continue
		}
		if n < lo || n > hi {
			s.fail("Please enter a number between %d and %d.", lo, hi)
			continue
		}
		return n, nil
	}
}
