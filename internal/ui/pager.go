package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Pager is a scrollable full-screen view of a block of text.
type Pager struct {
	title    string
	content  string
	viewport viewport.Model
	ready    bool
}

// NewPager creates a pager showing content under title.
func NewPager(title, content string) *Pager {
	return &Pager{title: title, content: content}
}

func (p *Pager) Init() tea.Cmd {
	return nil
}

func (p *Pager) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return p, tea.Quit
		}
	case tea.WindowSizeMsg:
		chrome := lipgloss.Height(p.headerView()) + lipgloss.Height(p.footerView())
		height := msg.Height - chrome
		if height < 1 {
			height = 1
		}
		if !p.ready {
			p.viewport = viewport.New(msg.Width, height)
			p.viewport.SetContent(p.content)
			p.ready = true
		} else {
			p.viewport.Width = msg.Width
			p.viewport.Height = height
		}
	}

	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return p, cmd
}

func (p *Pager) View() string {
	if !p.ready {
		return "\n  Loading..."
	}
	return fmt.Sprintf("%s\n%s\n%s", p.headerView(), p.viewport.View(), p.footerView())
}

func (p *Pager) headerView() string {
	return BoxStyle.Render(TitleStyle.UnsetMarginBottom().Render(p.title))
}

func (p *Pager) footerView() string {
	percent := 100.0
	if p.ready {
		percent = p.viewport.ScrollPercent() * 100
	}
	return SubtleStyle.Render(fmt.Sprintf("%3.f%%  ↑/↓ scroll • q quit", percent))
}

// RunPager shows content in a full-screen pager until the user quits.
func RunPager(title, content string) error {
	_, err := tea.NewProgram(NewPager(title, content), tea.WithAltScreen()).Run()
	return err
}
