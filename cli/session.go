// Package cli 实现交互式菜单：访客菜单（登录/注册/退出）、用户菜单（浏览、待看、观看历史、
// 推荐、改密码、登出、退出）以及推荐流程（类型 → 排序 → 数量）。
//
// 菜单文本写到 out，日志走 logging（stderr），两者互不干扰。输入结束（EOF）等同于退出。
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rushteam/movietrack/account"
	"github.com/rushteam/movietrack/core"
	"github.com/rushteam/movietrack/logging"
	"github.com/rushteam/movietrack/recommend"
)

// Session 是一次交互会话，同一时刻最多一个登录用户。
type Session struct {
	accounts *account.Service
	catalog  core.Catalog
	engine   *recommend.Engine

	in     *bufio.Scanner
	out    io.Writer
	styles styles

	user *account.User
}

// NewSession 创建会话。
func NewSession(accounts *account.Service, catalog core.Catalog, engine *recommend.Engine, in io.Reader, out io.Writer) *Session {
	if engine == nil {
		engine = recommend.New()
	}
	return &Session{
		accounts: accounts,
		catalog:  catalog,
		engine:   engine,
		in:       bufio.NewScanner(in),
		out:      out,
		styles:   newStyles(out),
	}
}

// Run 运行菜单循环，直到用户选择退出或输入结束。退出前保存全部用户。
func (s *Session) Run(ctx context.Context) error {
	err := s.loop(ctx)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	if err := s.accounts.Save(ctx); err != nil {
		s.fail("Could not save users: %v", err)
		return err
	}
	s.println("Goodbye!")
	return nil
}

func (s *Session) loop(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var (
			running bool
			err     error
		)
		if s.user == nil {
			running, err = s.guestMenu(ctx)
		} else {
			running, err = s.userMenu(ctx)
		}
		if err != nil {
			return err
		}
		if !running {
			return nil
		}
	}
}

func (s *Session) guestMenu(ctx context.Context) (bool, error) {
	s.println("")
	s.heading("--- Movie Tracker ---")
	s.println("1. Login")
	s.println("2. Create account")
	s.println("3. Exit")
	choice, err := s.ask("Choose an option: ")
	if err != nil {
		return false, err
	}

	switch choice {
	case "1":
		return true, s.login(ctx)
	case "2":
		return true, s.createAccount(ctx)
	case "3":
		return false, nil
	default:
		s.fail("Invalid option. Please try again.")
		return true, nil
	}
}

func (s *Session) userMenu(ctx context.Context) (bool, error) {
	s.println("")
	s.heading("--- Welcome, %s ---", s.user.Username)
	s.println("1. Browse movies")
	s.println("2. Add movie to watchlist")
	s.println("3. Remove movie from watchlist")
	s.println("4. View watchlist")
	s.println("5. Mark movie as watched")
	s.println("6. View history")
	s.println("7. Get recommendations")
	s.println("8. Change password")
	s.println("9. Logout")
	s.println("10. Exit")
	choice, err := s.ask("Choose an option: ")
	if err != nil {
		return false, err
	}

	switch choice {
	case "1":
		s.browse()
	case "2":
		err = s.addToWatchlist(ctx)
	case "3":
		err = s.removeFromWatchlist(ctx)
	case "4":
		s.viewWatchlist()
	case "5":
		err = s.markWatched(ctx)
	case "6":
		s.viewHistory()
	case "7":
		err = s.recommend(ctx)
	case "8":
		err = s.changePassword(ctx)
	case "9":
		logging.Info().Str("user", s.user.Username).Msg("logout")
		s.user = nil
		s.success("Logged out.")
	case "10":
		return false, nil
	default:
		s.fail("Invalid option. Please try again.")
	}
	return true, err
}

// ask 输出提示并读取一行（去除首尾空白）。输入结束时返回 io.EOF。
func (s *Session) ask(prompt string) (string, error) {
	fmt.Fprint(s.out, s.styles.prompt.Render(prompt))
	if !s.in.Scan() {
		fmt.Fprintln(s.out)
		if err := s.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

// report 输出错误提示。
//   - CONFLICT：目标状态已存在，作为普通提示输出
//   - INVALID_INPUT 等其他领域错误：以错误样式展示其消息
//   - INTERNAL_ERROR 或非领域错误（如保存失败）：记录日志后给出通用提示
func (s *Session) report(err error) {
	de := core.GetDomainError(err)
	switch {
	case de == nil || de.Code == core.ErrorCodeInternalError:
		logging.Error().Err(err).Msg("operation failed")
		s.fail("Something went wrong: %v", err)
	case core.IsConflict(err):
		s.println("%s", de.Message)
	case core.IsInvalidInput(err):
		logging.Debug().Str("module", de.Module).Msg(de.Message)
		s.fail("%s", de.Message)
	default:
		s.fail("%s", de.Message)
	}
}
