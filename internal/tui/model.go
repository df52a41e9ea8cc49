package tui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"recipematch/internal/domain"
)

// RecipePort is the TUI-facing subset of the recipe service.
type RecipePort interface {
	Suggest(query string) ([]domain.Match, error)
	Substitutions(input string) []domain.Substitution
}

// Model is the Bubble Tea model for the interactive recipe finder.
type Model struct {
	service   RecipePort
	input     textinput.Model
	viewport  viewport.Model
	results   []domain.Match
	subs      []domain.Substitution
	summary   string
	status    string
	cursor    int
	ready     bool
	lastQuery string
}

// New creates a new TUI model instance.
func New(service RecipePort, summary string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ingredients, comma separated (or 'exit')"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{service: service, input: ti, viewport: vp, summary: summary, status: "Loaded. Type your ingredients."}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		// account for frames around result and query boxes
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		totalHeaderLines := 2                                    // header + summary
		totalFooterLines := 1                                    // status
		reserved := totalHeaderLines + totalFooterLines + qh + 1 // 1 spacer
		vh := max(3, msg.Height-reserved)
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderCurrentResult())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if strings.EqualFold(q, "exit") {
				return m, tea.Quit
			}
			if q != "" {
				m = m.search(q)
				return m, nil
			}
		case "down":
			if len(m.results) > 0 {
				m.cursor = (m.cursor + 1) % len(m.results)
				m.viewport.SetContent(m.renderCurrentResult())
				return m, nil
			}
		case "up":
			if len(m.results) > 0 {
				m.cursor = (m.cursor - 1 + len(m.results)) % len(m.results)
				m.viewport.SetContent(m.renderCurrentResult())
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) search(q string) Model {
	res, err := m.service.Suggest(q)
	if err != nil {
		m.status = "Error: " + err.Error()
		m.results = nil
		m.subs = nil
	} else {
		m.status = fmt.Sprintf("%d recipes for %q", len(res), q)
		m.results = res
		m.subs = m.service.Substitutions(q)
		m.cursor = 0
		m.lastQuery = q
	}
	m.viewport.SetContent(m.renderCurrentResult())
	return m
}

// View renders the TUI layout and current result.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Recipe Finder")
	summary := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.summary)
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	results := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + summary + "\n" + results + "\n" + input + "\n" + status
}

func (m Model) renderCurrentResult() string {
	if len(m.results) == 0 {
		return "No results yet."
	}
	r := m.results[m.cursor]
	label := r.Label
	if label == "" {
		label = "unknown cuisine"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Recipe %d/%d  id=%s  %s  score=%.3f\n\n", m.cursor+1, len(m.results), r.ID, label, r.Score)
	b.WriteString(highlightIngredients(r.Ingredients, m.lastQuery))
	if len(m.subs) > 0 {
		b.WriteString("\n\nSubstitutions:")
		for _, s := range m.subs {
			fmt.Fprintf(&b, "\n  %s: %s", s.Ingredient, s.Substitute)
		}
	}
	return b.String()
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	unicodeWordRe  = regexp.MustCompile(`[\p{L}\p{N}]+`)
)

// highlightIngredients renders one ingredient per line and emphasises those
// sharing a word with the query.
func highlightIngredients(ingredients []string, query string) string {
	if len(ingredients) == 0 {
		return "(no ingredients)"
	}
	qTokens := toTokenSet(query)
	lines := make([]string, len(ingredients))
	for i, ing := range ingredients {
		line := "- " + ing
		if overlaps(qTokens, ing) {
			line = highlightStyle.Render(line)
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

func toTokenSet(s string) map[string]struct{} {
	tokens := unicodeWordRe.FindAllString(strings.ToLower(s), -1)
	m := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		m[t] = struct{}{}
	}
	return m
}

func overlaps(queryTokens map[string]struct{}, ingredient string) bool {
	for _, t := range unicodeWordRe.FindAllString(strings.ToLower(ingredient), -1) {
		if _, ok := queryTokens[t]; ok {
			return true
		}
	}
	return false
}
