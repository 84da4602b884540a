// Package tui is the terminal front end of the gacha.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cli/browser"

	"github.com/gourmet-gacha/gacha/internal/config"
	"github.com/gourmet-gacha/gacha/internal/gacha"
	"github.com/gourmet-gacha/gacha/internal/models"
	"github.com/gourmet-gacha/gacha/internal/services"
)

// Options configures the terminal UI.
type Options struct {
	SpinDelay time.Duration
	// OpenURL opens a listing link. Defaults to the system browser.
	OpenURL func(url string) error
}

type (
	datasetLoadedMsg struct{ dataset *models.Dataset }
	loadFailedMsg    struct{ err error }
	spinDoneMsg      struct{}
	drawnMsg         struct {
		result models.DrawResult
		err    error
	}
	openedMsg struct {
		url string
		err error
	}
)

// Model is the root Bubble Tea model. All gacha rules live in gacha.State;
// the model only maps keys and messages onto its transitions.
type Model struct {
	ctx       context.Context
	catalog   services.Catalog
	spinDelay time.Duration
	openURL   func(string) error

	state   gacha.State
	input   textinput.Model
	spinner spinner.Model
	notice  string
	width   int
}

// New creates the model. ctx bounds the dataset load and every draw.
func New(ctx context.Context, catalog services.Catalog, opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "例: ラーメン、奈良市、奈良駅（空欄でもOK！）"
	ti.CharLimit = 100
	ti.Width = 40

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	open := opts.OpenURL
	if open == nil {
		open = browser.OpenURL
	}

	return Model{
		ctx:       ctx,
		catalog:   catalog,
		spinDelay: opts.SpinDelay,
		openURL:   open,
		state:     gacha.NewState(),
		input:     ti,
		spinner:   s,
	}
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, catalog services.Catalog, opts Options) error {
	p := tea.NewProgram(New(ctx, catalog, opts), tea.WithContext(ctx), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// State returns the current presentation state.
func (m Model) State() gacha.State {
	return m.state
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		if ds := m.catalog.Dataset(); ds != nil {
			return datasetLoadedMsg{dataset: ds}
		}
		if err := m.catalog.Load(m.ctx); err != nil {
			return loadFailedMsg{err: err}
		}
		return datasetLoadedMsg{dataset: m.catalog.Dataset()}
	}
}

func (m Model) drawCmd(query string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.catalog.Draw(m.ctx, query)
		return drawnMsg{result: res, err: err}
	}
}

func (m Model) spinCmd() tea.Cmd {
	if m.spinDelay <= 0 {
		return func() tea.Msg { return spinDoneMsg{} }
	}
	return tea.Tick(m.spinDelay, func(time.Time) tea.Msg { return spinDoneMsg{} })
}

func (m Model) openCmd(url string) tea.Cmd {
	return func() tea.Msg {
		return openedMsg{url: url, err: m.openURL(url)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case datasetLoadedMsg:
		m.state = m.state.Loaded(msg.dataset)
		return m, m.input.Focus()

	case loadFailedMsg:
		logger := config.GetLogger()
		logger.Warn().Err(msg.err).Msg("Dataset load failed")
		m.state = m.state.LoadFailed(msg.err)
		m.input.Blur()
		return m, nil

	case spinDoneMsg:
		if m.state.Phase != gacha.PhaseDrawing {
			return m, nil
		}
		return m, m.drawCmd(m.state.Query)

	case drawnMsg:
		if msg.err != nil {
			m.state = gacha.NewState().LoadFailed(msg.err)
			m.input.Blur()
			return m, nil
		}
		m.state = m.state.Finish(msg.result)
		return m, m.input.Focus()

	case openedMsg:
		if msg.err != nil {
			m.notice = fmt.Sprintf("リンクを開けませんでした: %v", msg.err)
		} else {
			m.notice = ""
		}
		return m, nil

	case spinner.TickMsg:
		if m.state.Phase != gacha.PhaseLoading && m.state.Phase != gacha.PhaseDrawing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "enter":
		st, ok := m.state.WithQuery(strings.TrimSpace(m.input.Value())).BeginDraw()
		if !ok {
			return m, nil
		}
		m.state = st
		m.notice = ""
		m.input.Blur()
		return m, tea.Batch(m.spinner.Tick, m.spinCmd())

	case "ctrl+r":
		if m.state.Phase != gacha.PhaseDoneEmpty {
			return m, nil
		}
		m.state = m.state.Reset()
		m.input.SetValue("")
		return m, nil
	}

	// digits pick a result card while results are shown; others are typed
	if m.state.Phase == gacha.PhaseDoneResults && len(msg.Runes) == 1 {
		if i := int(msg.Runes[0] - '1'); i >= 0 && i < len(m.state.Result.Listings) {
			if l := m.state.Result.Listings[i]; l.HasLink() {
				return m, m.openCmd(l.Link)
			}
			return m, nil
		}
	}

	if !m.state.CanEdit() || m.state.Phase == gacha.PhaseDrawing {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.state = m.state.WithQuery(m.input.Value())
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("🍜 奈良グルメガチャ"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("ジャンル・地域・駅名で絞り込んで、ランダムにお店を選ぼう！"))
	b.WriteString("\n\n")

	switch m.state.Phase {
	case gacha.PhaseLoading:
		fmt.Fprintf(&b, "%s データを読み込んでいます...\n", m.spinner.View())
	case gacha.PhaseLoadError:
		b.WriteString(errorStyle.Render(m.state.Message))
		b.WriteString("\n\n")
		b.WriteString(hintStyle.Render("esc: 終了"))
		b.WriteString("\n")
	default:
		b.WriteString("🎯 ジャンル / 地域 / 駅名\n")
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		m.viewOutcome(&b)
	}

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.notice))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewOutcome(b *strings.Builder) {
	switch m.state.Phase {
	case gacha.PhaseDrawing:
		fmt.Fprintf(b, "%s ガチャ回転中... 何が出るかな？✨\n", m.spinner.View())
	case gacha.PhaseDoneResults:
		b.WriteString(hitStyle.Render(fmt.Sprintf("🎉 当たり！%d件ヒット！", len(m.state.Result.Listings))))
		b.WriteString("\n")
		for i, l := range m.state.Result.Listings {
			b.WriteString(renderCard(i+1, l, m.width))
			b.WriteString("\n")
		}
		b.WriteString(hintStyle.Render("enter: もう一度回す  1-5: Googleマップで見る  esc: 終了"))
		b.WriteString("\n")
	case gacha.PhaseDoneEmpty:
		b.WriteString("😢 該当するお店が見つかりませんでした\n")
		b.WriteString(subtitleStyle.Render("違う条件で試してみてください"))
		b.WriteString("\n\n")
		b.WriteString(hintStyle.Render("ctrl+r: 条件を変える  esc: 終了"))
		b.WriteString("\n")
	default:
		b.WriteString(hintStyle.Render("💡 何も入力せずにガチャを回すと、全店舗からランダムに選ばれます！"))
		b.WriteString("\n")
		b.WriteString(hintStyle.Render("enter: ガチャを回す！  esc: 終了"))
		b.WriteString("\n")
	}
}

func renderCard(n int, l models.Listing, width int) string {
	lines := []string{fmt.Sprintf("%d. %s  %s", n, nameStyle.Render(l.Name), genreStyle.Render(l.Genre))}
	if place := l.Place(); place != "" {
		lines = append(lines, "📍 "+place)
	}
	if l.HasLink() {
		lines = append(lines, subtitleStyle.Render("Googleマップで見る: "+l.Link))
	}
	style := cardStyle
	if width > 4 {
		style = style.MaxWidth(width - 2)
	}
	return style.Render(strings.Join(lines, "\n"))
}
