package tui

import (
	"context"
	"strings"
	"testing"

	"crop-compass/internal/domain"

	tea "github.com/charmbracelet/bubbletea"
)

func TestUpdatePricesMsgFillsTable(t *testing.T) {
	t.Parallel()

	m := NewAppModel(Services{Prices: &stubPrices{}, Username: "farmer"})
	updated, _ := m.Update(pricesMsg{points: []*domain.PricePoint{
		{Commodity: "WHEAT", Year: 2026, Month: 7, Price: 6.45, Unit: "USD/bushel", Quality: domain.QualityObserved},
	}})
	model := updated.(*AppModel)

	view := model.View()
	if !strings.Contains(view, "WHEAT") || !strings.Contains(view, "6.45") {
		t.Fatalf("expected price row in view:\n%s", view)
	}
	if !strings.Contains(view, "Crop Compass / farmer") {
		t.Fatalf("expected title with username:\n%s", view)
	}
}

func TestUpdateForecastMsgRendersPane(t *testing.T) {
	t.Parallel()

	m := NewAppModel(Services{Prices: &stubPrices{}})
	updated, _ := m.Update(forecastMsg{
		commodity: "CORN",
		result: domain.ForecastResult{
			Model:      "Ensemble ML Prediction",
			Confidence: 0.85,
			Predictions: []domain.PricePoint{
				{Year: 2026, Month: 9, Price: 4.81, ConfidenceInterval: &domain.ConfidenceInterval{Lower: 4.5, Upper: 5.1}},
			},
		},
	})
	view := updated.(*AppModel).View()
	if !strings.Contains(view, "CORN forecast") || !strings.Contains(view, "confidence 85%") {
		t.Fatalf("expected forecast pane in view:\n%s", view)
	}
}

func TestUpdateQuitKey(t *testing.T) {
	t.Parallel()

	m := NewAppModel(Services{Prices: &stubPrices{}})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if msg := cmd(); msg != tea.Quit() {
		t.Fatalf("expected tea.Quit, got %T", msg)
	}
}

func TestUpdatePricesErrShowsStatus(t *testing.T) {
	t.Parallel()

	m := NewAppModel(Services{Prices: &stubPrices{}})
	updated, _ := m.Update(pricesMsg{err: context.DeadlineExceeded})
	view := updated.(*AppModel).View()
	if !strings.Contains(view, "price fetch failed") {
		t.Fatalf("expected error status in view:\n%s", view)
	}
}

func TestAskKeyOpensAdvisorInput(t *testing.T) {
	t.Parallel()

	adv := &stubAdvisor{answer: "hold your wheat"}
	m := NewAppModel(Services{Prices: &stubPrices{}, Advisor: adv, Username: "farmer"})

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	model := updated.(*AppModel)
	if !model.asking {
		t.Fatal("expected ask mode after 'a'")
	}
	if !strings.Contains(model.View(), "Advisor") {
		t.Fatalf("expected advisor pane in view:\n%s", model.View())
	}
}

func TestAskSubmitCallsAdvisor(t *testing.T) {
	t.Parallel()

	adv := &stubAdvisor{answer: "hold your wheat"}
	m := NewAppModel(Services{Prices: &stubPrices{}, Advisor: adv, Username: "farmer"})
	m.asking = true
	m.input.SetValue("sell wheat now?")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model := updated.(*AppModel)
	if model.asking {
		t.Fatal("expected ask mode to close on submit")
	}
	if cmd == nil {
		t.Fatal("expected advisor command")
	}

	msg := cmd()
	am, ok := msg.(advisorMsg)
	if !ok {
		t.Fatalf("expected advisorMsg, got %T", msg)
	}
	if am.answer != "hold your wheat" {
		t.Fatalf("unexpected answer: %q", am.answer)
	}
	if adv.lastQuestion != "sell wheat now?" {
		t.Fatalf("advisor got question %q", adv.lastQuestion)
	}

	updated, _ = model.Update(am)
	view := updated.(*AppModel).View()
	if !strings.Contains(view, "hold your wheat") {
		t.Fatalf("expected answer in view:\n%s", view)
	}
}

func TestAskKeyIgnoredWithoutAdvisor(t *testing.T) {
	t.Parallel()

	m := NewAppModel(Services{Prices: &stubPrices{}})
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	if updated.(*AppModel).asking {
		t.Fatal("ask mode should require an advisor")
	}
}

func TestSessionChatIDStable(t *testing.T) {
	t.Parallel()

	if sessionChatID("farmer") != sessionChatID("farmer") {
		t.Fatal("expected stable chat ID for same username")
	}
	if sessionChatID("farmer") == sessionChatID("rancher") {
		t.Fatal("expected distinct chat IDs for different usernames")
	}
}

type stubAdvisor struct {
	answer       string
	lastQuestion string
}

func (s *stubAdvisor) Ask(ctx context.Context, chatID int64, userMessage string) (string, error) {
	s.lastQuestion = userMessage
	return s.answer, nil
}

type stubPrices struct{}

func (s *stubPrices) GetLatestAll(ctx context.Context) ([]*domain.PricePoint, error) {
	return nil, nil
}

func (s *stubPrices) GetHistory(ctx context.Context, commodity string, months int) ([]domain.PricePoint, error) {
	return nil, nil
}
