package tui

import (
	"context"
	"fmt"
	"hash/fnv"
	"time"

	"crop-compass/internal/domain"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	requestTimeout = 10 * time.Second
	advisorTimeout = 30 * time.Second
)

// PriceQuerier feeds the dashboard's price table.
type PriceQuerier interface {
	GetLatestAll(ctx context.Context) ([]*domain.PricePoint, error)
	GetHistory(ctx context.Context, commodity string, months int) ([]domain.PricePoint, error)
}

// Forecaster feeds the forecast pane for the selected commodity.
type Forecaster interface {
	GeneratePredictions(ctx context.Context, data []domain.PricePoint, monthsAhead int, model domain.ForecastModel) domain.ForecastResult
}

// AdvisorQuerier answers free-form market questions. Optional.
type AdvisorQuerier interface {
	Ask(ctx context.Context, chatID int64, userMessage string) (string, error)
}

// Services bundles everything the dashboard needs.
type Services struct {
	Prices     PriceQuerier
	Forecaster Forecaster
	Advisor    AdvisorQuerier
	Username   string
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42")).
			MarginBottom(1)
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

type pricesMsg struct {
	points []*domain.PricePoint
	err    error
}

type forecastMsg struct {
	commodity string
	result    domain.ForecastResult
	err       error
}

type advisorMsg struct {
	answer string
	err    error
}

// AppModel is the top-level dashboard model.
type AppModel struct {
	svc      Services
	prices   table.Model
	input    textinput.Model
	forecast *domain.ForecastResult
	selected string
	answer   string
	asking   bool
	status   string
	width    int
	height   int
}

func NewAppModel(svc Services) *AppModel {
	columns := []table.Column{
		{Title: "Commodity", Width: 12},
		{Title: "Month", Width: 9},
		{Title: "Price", Width: 10},
		{Title: "Unit", Width: 12},
		{Title: "Quality", Width: 12},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(len(domain.SupportedCommodities)+1),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).BorderBottom(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	t.SetStyles(styles)

	input := textinput.New()
	input.Placeholder = "Ask about the markets..."
	input.CharLimit = 280
	input.Width = 60

	return &AppModel{
		svc:    svc,
		prices: t,
		input:  input,
		status: "loading prices...",
	}
}

func (m *AppModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *AppModel) Init() tea.Cmd {
	return m.fetchPrices()
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if m.asking {
			switch msg.String() {
			case "esc":
				m.asking = false
				m.input.Blur()
				m.status = "ask cancelled"
				return m, nil
			case "enter":
				question := m.input.Value()
				if question == "" {
					return m, nil
				}
				m.asking = false
				m.input.Blur()
				m.input.SetValue("")
				m.status = "asking advisor..."
				return m, m.askAdvisor(question)
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			m.status = "refreshing..."
			return m, m.fetchPrices()
		case "a":
			if m.svc.Advisor != nil {
				m.asking = true
				m.input.Focus()
				return m, textinput.Blink
			}
		case "enter", "f":
			if row := m.prices.SelectedRow(); row != nil {
				commodity := row[0]
				m.status = "forecasting " + commodity + "..."
				return m, m.fetchForecast(commodity)
			}
		}

	case pricesMsg:
		if msg.err != nil {
			m.status = errorStyle.Render("price fetch failed: " + msg.err.Error())
			return m, nil
		}
		rows := make([]table.Row, 0, len(msg.points))
		for _, p := range msg.points {
			rows = append(rows, table.Row{
				p.Commodity,
				fmt.Sprintf("%04d-%02d", p.Year, p.Month),
				fmt.Sprintf("%.2f", p.Price),
				p.Unit,
				p.Quality,
			})
		}
		m.prices.SetRows(rows)
		m.status = fmt.Sprintf("%d commodities, press enter to forecast, r to refresh, q to quit", len(rows))
		return m, nil

	case forecastMsg:
		if msg.err != nil {
			m.status = errorStyle.Render("forecast failed: " + msg.err.Error())
			return m, nil
		}
		m.selected = msg.commodity
		result := msg.result
		m.forecast = &result
		m.status = fmt.Sprintf("forecast for %s ready", msg.commodity)
		return m, nil

	case advisorMsg:
		if msg.err != nil {
			m.status = errorStyle.Render("advisor failed: " + msg.err.Error())
			return m, nil
		}
		m.answer = msg.answer
		m.status = "advisor replied"
		return m, nil
	}

	var cmd tea.Cmd
	m.prices, cmd = m.prices.Update(msg)
	return m, cmd
}

func (m *AppModel) View() string {
	var sections []string

	title := "Crop Compass"
	if m.svc.Username != "" {
		title += " / " + m.svc.Username
	}
	sections = append(sections, titleStyle.Render(title))
	sections = append(sections, paneStyle.Render(m.prices.View()))

	if m.forecast != nil {
		sections = append(sections, paneStyle.Render(m.renderForecast()))
	}
	if m.asking {
		sections = append(sections, paneStyle.Render("Advisor\n"+m.input.View()))
	} else if m.answer != "" {
		sections = append(sections, paneStyle.Render("Advisor\n"+m.answer))
	}
	sections = append(sections, statusStyle.Render(m.status))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *AppModel) renderForecast() string {
	f := m.forecast
	out := fmt.Sprintf("%s forecast (%s, confidence %.0f%%)\n", m.selected, f.Model, f.Confidence*100)
	for _, p := range f.Predictions {
		out += fmt.Sprintf("  %04d-%02d  %8.2f", p.Year, p.Month, p.Price)
		if p.ConfidenceInterval != nil {
			out += fmt.Sprintf("  [%.2f - %.2f]", p.ConfidenceInterval.Lower, p.ConfidenceInterval.Upper)
		}
		out += "\n"
	}
	return out
}

func (m *AppModel) fetchPrices() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		points, err := m.svc.Prices.GetLatestAll(ctx)
		return pricesMsg{points: points, err: err}
	}
}

func (m *AppModel) fetchForecast(commodity string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		history, err := m.svc.Prices.GetHistory(ctx, commodity, 0)
		if err != nil {
			return forecastMsg{commodity: commodity, err: err}
		}
		result := m.svc.Forecaster.GeneratePredictions(ctx, history, 6, domain.ModelEnsemble)
		return forecastMsg{commodity: commodity, result: result}
	}
}

func (m *AppModel) askAdvisor(question string) tea.Cmd {
	chatID := sessionChatID(m.svc.Username)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), advisorTimeout)
		defer cancel()

		answer, err := m.svc.Advisor.Ask(ctx, chatID, question)
		return advisorMsg{answer: answer, err: err}
	}
}

// sessionChatID gives each SSH user a stable conversation thread.
func sessionChatID(username string) int64 {
	h := fnv.New64a()
	h.Write([]byte(username))
	return int64(h.Sum64())
}
