package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// styles 按输出端的终端能力渲染；写入文件或缓冲区时不带颜色。
type styles struct {
	heading lipgloss.Style
	prompt  lipgloss.Style
	success lipgloss.Style
	errorS  lipgloss.Style
	info    lipgloss.Style
}

func newStyles(out io.Writer) styles {
	r := lipgloss.NewRenderer(out)
	return styles{
		heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")),
		prompt:  r.NewStyle().Foreground(lipgloss.Color("#6EC4F4")),
		success: r.NewStyle().Foreground(lipgloss.Color("#6EF4A1")),
		errorS:  r.NewStyle().Foreground(lipgloss.Color("#F45E6E")),
		info:    r.NewStyle(),
	}
}

func (s *Session) heading(format string, a ...any) {
	fmt.Fprintln(s.out, s.styles.heading.Render(fmt.Sprintf(format, a...)))
}

func (s *Session) println(format string, a ...any) {
	fmt.Fprintln(s.out, s.styles.info.Render(fmt.Sprintf(format, a...)))
}

func (s *Session) success(format string, a ...any) {
	fmt.Fprintln(s.out, s.styles.success.Render(fmt.Sprintf(format, a...)))
}

func (s *Session) fail(format string, a ...any) {
	fmt.Fprintln(s.out, s.styles.errorS.Render(fmt.Sprintf(format, a...)))
}
