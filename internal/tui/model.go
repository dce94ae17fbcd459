// Package tui provides the Bubble Tea selection and chart interface.
package tui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/owstat/internal/catalog"
	"github.com/verte-zerg/owstat/internal/chart"
	"github.com/verte-zerg/owstat/internal/dataset"
	"github.com/verte-zerg/owstat/internal/model"
	"github.com/verte-zerg/owstat/internal/profile"
	"github.com/verte-zerg/owstat/internal/roster"
	"github.com/verte-zerg/owstat/internal/statpath"
)

const (
	tabPlayers = iota
	tabHeroes
	tabStat
	tabChart
)

const (
	focusOptions = iota
	focusStats
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	modalStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2)
)

// Model implements the Bubble Tea comparison UI.
type Model struct {
	store     *profile.Store
	retriever *profile.Retriever
	catalog   *catalog.Catalog
	path      *statpath.Path

	minPlaytime     int
	defaultPlatform string
	defaultRegion   string

	tabs      []string
	activeTab int
	width     int
	height    int
	errMsg    string

	players      []model.Player
	checked      map[string]bool
	playerCursor int

	addMode   bool
	addInputs []textinput.Model
	addIndex  int
	addError  string

	roles      []string
	roleIndex  int
	heroCursor int
	selected   []string // display names, selection order

	options      []string
	optionCursor int
	statNames    []string
	statCursor   int
	statFocus    int

	chartView   viewport.Model
	statusLines []string
	chartDrawn  bool
}

// Options configures a new TUI model.
type Options struct {
	Store           *profile.Store
	Retriever       *profile.Retriever
	Catalog         *catalog.Catalog
	MinPlaytime     int
	DefaultPlatform string
	DefaultRegion   string
}

// NewModel constructs the comparison UI model.
func NewModel(opts Options) *Model {
	m := &Model{
		store:           opts.Store,
		retriever:       opts.Retriever,
		catalog:         opts.Catalog,
		path:            statpath.New(),
		minPlaytime:     opts.MinPlaytime,
		defaultPlatform: opts.DefaultPlatform,
		defaultRegion:   opts.DefaultRegion,
		tabs:            []string{"Players", "Heroes", "Stat", "Chart"},
		checked:         map[string]bool{},
		roles:           roster.Roles(),
	}
	if m.minPlaytime <= 0 {
		m.minPlaytime = dataset.DefaultMinPlaytimeSeconds
	}
	m.initAddInputs()
	m.chartView = viewport.New(0, 0)
	m.loadPlayers()
	m.refreshStatMenus()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		if m.addMode {
			return m.updateAdd(msg)
		}
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "m":
			m.path.ToggleMode()
			m.chartDrawn = false
			return m, nil
		}
		switch m.activeTab {
		case tabPlayers:
			return m.updatePlayers(msg)
		case tabHeroes:
			return m.updateHeroes(msg)
		case tabStat:
			return m.updateStat(msg)
		case tabChart:
			return m.updateChart(msg)
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.addMode {
		return fitLines(m.renderAddModal(), m.width, m.height)
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) initAddInputs() {
	m.addInputs = []textinput.Model{
		newModalInput("Battletag: ", "Clovis-1467"),
		newModalInput("Platform: ", "pc"),
		newModalInput("Region: ", "us"),
	}
}

func newModalInput(prompt, placeholder string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.Placeholder = placeholder
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) loadPlayers() {
	players, err := m.store.ListPlayers(context.Background())
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to load players: %v", err)
		return
	}
	m.players = players
	if m.playerCursor >= len(m.players) {
		m.playerCursor = maxInt(0, len(m.players)-1)
	}
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.chartView.Width = m.width
	m.chartView.Height = bodyHeight
	for i := range m.addInputs {
		promptWidth := lipgloss.Width(m.addInputs[i].Prompt)
		m.addInputs[i].Width = maxInt(10, modalInnerWidth(m.width)-promptWidth)
	}
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
}

// Players tab.

func (m *Model) updatePlayers(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.playerCursor > 0 {
			m.playerCursor--
		}
	case "down", "j":
		if m.playerCursor < len(m.players)-1 {
			m.playerCursor++
		}
	case " ":
		if len(m.players) > 0 {
			tag := m.players[m.playerCursor].Tag
			m.checked[tag] = !m.checked[tag]
			m.chartDrawn = false
		}
	case "a":
		return m.startAdd()
	case "d":
		if len(m.players) > 0 {
			tag := m.players[m.playerCursor].Tag
			if err := m.store.DeletePlayer(context.Background(), tag); err != nil {
				m.errMsg = fmt.Sprintf("failed to delete %s: %v", tag, err)
				return m, nil
			}
			delete(m.checked, tag)
			m.loadPlayers()
			m.chartDrawn = false
		}
	}
	return m, nil
}

func (m *Model) startAdd() (tea.Model, tea.Cmd) {
	m.addMode = true
	m.addError = ""
	m.addInputs[0].SetValue("")
	m.addInputs[1].SetValue(m.defaultPlatform)
	m.addInputs[2].SetValue(m.defaultRegion)
	return m, m.setAddIndex(0)
}

func (m *Model) setAddIndex(idx int) tea.Cmd {
	count := len(m.addInputs)
	if idx < 0 {
		idx = count - 1
	}
	if idx >= count {
		idx = 0
	}
	m.addIndex = idx
	var cmd tea.Cmd
	for i := range m.addInputs {
		if i == m.addIndex {
			cmd = m.addInputs[i].Focus()
		} else {
			m.addInputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.addMode = false
		m.addError = ""
		return m, nil
	case tea.KeyEnter:
		if err := m.applyAdd(); err != nil {
			m.addError = err.Error()
			return m, nil
		}
		m.addMode = false
		m.addError = ""
		m.loadPlayers()
		return m, nil
	case tea.KeyTab:
		return m, m.setAddIndex(m.addIndex + 1)
	case tea.KeyShiftTab:
		return m, m.setAddIndex(m.addIndex - 1)
	}
	var cmd tea.Cmd
	m.addInputs[m.addIndex], cmd = m.addInputs[m.addIndex].Update(msg)
	return m, cmd
}

func (m *Model) applyAdd() error {
	tag := strings.TrimSpace(m.addInputs[0].Value())
	platform := strings.ToLower(strings.TrimSpace(m.addInputs[1].Value()))
	region := strings.ToLower(strings.TrimSpace(m.addInputs[2].Value()))
	if tag == "" {
		return fmt.Errorf("battletag must not be empty")
	}
	if !strings.Contains(tag, "-") {
		return fmt.Errorf("battletag must include the discriminator (e.g. Clovis-1467)")
	}
	if platform == "" {
		platform = "pc"
	}
	if region == "" {
		region = "us"
	}
	player := model.Player{Tag: tag, Platform: platform, Region: region}
	if err := m.store.SavePlayer(context.Background(), player); err != nil {
		return fmt.Errorf("failed to save player: %w", err)
	}
	m.checked[tag] = true
	m.chartDrawn = false
	return nil
}

// Heroes tab.

func (m *Model) updateHeroes(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := roster.HeroesByRole(m.roles[m.roleIndex])
	switch msg.String() {
	case "up", "k":
		if m.heroCursor > 0 {
			m.heroCursor--
		}
	case "down", "j":
		if m.heroCursor < len(visible)-1 {
			m.heroCursor++
		}
	case "r":
		m.roleIndex = (m.roleIndex + 1) % len(m.roles)
		m.heroCursor = 0
	case " ":
		if len(visible) > 0 {
			m.toggleHero(visible[m.heroCursor])
		}
	case "c":
		m.selected = nil
		m.heroSelectionChanged()
	}
	return m, nil
}

func (m *Model) toggleHero(name string) {
	for i, h := range m.selected {
		if h == name {
			m.selected = append(m.selected[:i], m.selected[i+1:]...)
			m.heroSelectionChanged()
			return
		}
	}
	m.selected = append(m.selected, name)
	m.heroSelectionChanged()
}

func (m *Model) heroSelectionChanged() {
	keys := make([]string, 0, len(m.selected))
	for _, name := range m.selected {
		if key, ok := roster.APIName(name); ok {
			keys = append(keys, key)
		}
	}
	m.path.SetHeroSelection(keys)
	m.refreshStatMenus()
	m.chartDrawn = false
}

func (m *Model) refreshStatMenus() {
	m.options = catalog.MenuOptionsFor(len(m.selected))
	if !containsString(m.options, m.path.Option()) {
		m.path.SetOption("average")
		m.optionCursor = 0
	}
	for i, opt := range m.options {
		if opt == m.path.Option() {
			m.optionCursor = i
		}
	}
	names, ok := m.catalog.StatNamesFor(m.path.Option(), m.path.Hero())
	if !ok {
		names = nil
	}
	m.statNames = names
	m.statCursor = 0
	for i, name := range m.statNames {
		if name == m.path.Stat() {
			m.statCursor = i
		}
	}
}

// Stat tab.

func (m *Model) updateStat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.statFocus = (m.statFocus + 1) % 2
	case "up", "k":
		if m.statFocus == focusOptions && m.optionCursor > 0 {
			m.optionCursor--
		}
		if m.statFocus == focusStats && m.statCursor > 0 {
			m.statCursor--
		}
	case "down", "j":
		if m.statFocus == focusOptions && m.optionCursor < len(m.options)-1 {
			m.optionCursor++
		}
		if m.statFocus == focusStats && m.statCursor < len(m.statNames)-1 {
			m.statCursor++
		}
	case "enter", " ":
		if m.statFocus == focusOptions && len(m.options) > 0 {
			if m.path.SetOption(m.options[m.optionCursor]) {
				names, ok := m.catalog.StatNamesFor(m.path.Option(), m.path.Hero())
				if !ok {
					names = nil
				}
				m.statNames = names
				m.statCursor = 0
				m.chartDrawn = false
			}
		} else if m.statFocus == focusStats && len(m.statNames) > 0 {
			m.path.SetStat(m.statNames[m.statCursor])
			m.chartDrawn = false
		}
	}
	return m, nil
}

// Chart tab.

func (m *Model) updateChart(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.runChart()
		return m, nil
	}
	var cmd tea.Cmd
	m.chartView, cmd = m.chartView.Update(msg)
	return m, cmd
}

func (m *Model) runChart() {
	m.errMsg = ""
	m.statusLines = nil

	active := m.activePlayers()
	switch {
	case len(active) == 0:
		m.errMsg = "select at least one player (space on the Players tab)"
		return
	case len(m.selected) == 0:
		m.errMsg = "select at least one hero (space on the Heroes tab)"
		return
	case m.path.Stat() == "":
		m.errMsg = "select a stat on the Stat tab"
		return
	}

	ctx := context.Background()
	docs := map[string]catalog.Document{}
	players := make([]model.Player, 0, len(active))
	for _, player := range active {
		doc, source, err := m.retriever.Get(ctx, player)
		if err != nil {
			if errors.Is(err, profile.ErrPrivateProfile) {
				m.statusLines = append(m.statusLines, fmt.Sprintf("%s: profile is private, skipped", player.Tag))
				continue
			}
			m.statusLines = append(m.statusLines, fmt.Sprintf("%s: %v", player.Tag, err))
			continue
		}
		m.statusLines = append(m.statusLines, fmt.Sprintf("%s: loaded from %s", player.Tag, source))
		docs[player.Tag] = doc
		players = append(players, player)
	}
	if len(players) == 0 {
		m.errMsg = "no profiles could be loaded"
		return
	}

	ds := dataset.Build(players, docs, m.selected, m.path, m.minPlaytime)
	var buf bytes.Buffer
	if err := chart.RenderWithColor(&buf, ds, m.width, true); err != nil {
		m.errMsg = fmt.Sprintf("failed to render chart: %v", err)
		return
	}
	m.chartView.SetContent(strings.TrimRight(buf.String(), "\n"))
	m.chartView.GotoTop()
	m.chartDrawn = true
}

func (m *Model) activePlayers() []model.Player {
	out := make([]model.Player, 0, len(m.players))
	for _, p := range m.players {
		if m.checked[p.Tag] {
			out = append(out, p)
		}
	}
	return out
}

// Rendering.

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	summary := padLines(m.renderSummary(), m.width)
	return tabs + "\n" + summary
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderSummary() string {
	mode := "quickplay"
	if m.path.Mode() == catalog.ModeCompetitive {
		mode = "competitive"
	}
	summary := fmt.Sprintf("Selection: players=%d  heroes=%d  mode=%s  option=%s  stat=%s",
		len(m.activePlayers()), len(m.selected), mode, m.path.Option(), m.path.Stat())
	return headerStyle.Render(truncateLine(summary, m.width))
}

func (m *Model) renderBody(height int) string {
	switch m.activeTab {
	case tabPlayers:
		return fitLines(m.renderPlayers(), m.width, height)
	case tabHeroes:
		return fitLines(m.renderHeroes(height), m.width, height)
	case tabStat:
		return fitLines(m.renderStat(height), m.width, height)
	default:
		return fitLines(m.renderChart(), m.width, height)
	}
}

func (m *Model) renderPlayers() string {
	if len(m.players) == 0 {
		return "No saved players. Press a to add one."
	}
	lines := make([]string, 0, len(m.players))
	for i, p := range m.players {
		mark := "[ ]"
		if m.checked[p.Tag] {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %s (%s/%s)", mark, p.Tag, p.Platform, p.Region)
		lines = append(lines, styleListLine(line, i == m.playerCursor, m.checked[p.Tag]))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderHeroes(height int) string {
	visible := roster.HeroesByRole(m.roles[m.roleIndex])
	header := headerStyle.Render(fmt.Sprintf("Role filter: %s (r to cycle)", m.roles[m.roleIndex]))
	lines := []string{header}
	start := scrollOffset(m.heroCursor, len(visible), height-1)
	for i := start; i < len(visible) && i-start < height-1; i++ {
		name := visible[i]
		mark := "[ ]"
		if containsString(m.selected, name) {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %-14s %s", mark, name, dimStyle.Render(roster.Role(name)))
		lines = append(lines, styleListLine(line, i == m.heroCursor, containsString(m.selected, name)))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderStat(height int) string {
	if len(m.options) == 0 {
		return "Select at least one hero first; the stat menu depends on the hero count."
	}
	optionLines := []string{headerStyle.Render("Option")}
	for i, opt := range m.options {
		active := opt == m.path.Option()
		cursorHere := m.statFocus == focusOptions && i == m.optionCursor
		optionLines = append(optionLines, styleListLine(opt, cursorHere, active))
	}
	statLines := []string{headerStyle.Render("Stat")}
	if len(m.statNames) == 0 {
		statLines = append(statLines, dimStyle.Render("(no stats for this option)"))
	}
	start := scrollOffset(m.statCursor, len(m.statNames), height-1)
	for i := start; i < len(m.statNames) && i-start < height-1; i++ {
		name := m.statNames[i]
		active := name == m.path.Stat()
		cursorHere := m.statFocus == focusStats && i == m.statCursor
		statLines = append(statLines, styleListLine(name, cursorHere, active))
	}
	left := lipgloss.NewStyle().Width(minInt(24, m.width/3)).Render(strings.Join(optionLines, "\n"))
	right := strings.Join(statLines, "\n")
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

func (m *Model) renderChart() string {
	if !m.chartDrawn {
		lines := []string{"Press enter to fetch profiles and draw the chart."}
		lines = append(lines, m.statusLines...)
		return strings.Join(lines, "\n")
	}
	status := ""
	if len(m.statusLines) > 0 {
		status = headerStyle.Render(strings.Join(m.statusLines, "  ")) + "\n"
	}
	return status + m.chartView.View()
}

func (m *Model) renderFooter() string {
	help := "Nav: left/right  Move: up/down  Toggle: space  Mode: m  Quit: q"
	switch m.activeTab {
	case tabPlayers:
		help = "Nav: left/right  Move: up/down  Toggle: space  Add: a  Delete: d  Quit: q"
	case tabHeroes:
		help = "Nav: left/right  Move: up/down  Toggle: space  Role: r  Clear: c  Quit: q"
	case tabStat:
		help = "Nav: left/right  Move: up/down  Switch list: tab  Apply: enter  Mode: m  Quit: q"
	case tabChart:
		help = "Nav: left/right  Draw: enter  Scroll: up/down/pgup/pgdn  Quit: q"
	}
	if m.errMsg != "" {
		return headerStyle.Render(help) + "\n" + errorStyle.Render(m.errMsg)
	}
	return headerStyle.Render(help)
}

func (m *Model) renderAddModal() string {
	title := selectedStyle.Render("Add Player")
	body := []string{title}
	for _, input := range m.addInputs {
		body = append(body, input.View())
	}
	body = append(body,
		headerStyle.Render("tab/shift+tab: next field  enter: save  esc: cancel"),
	)
	if m.addError != "" {
		body = append(body, errorStyle.Render(m.addError))
	}
	box := modalStyle.Width(modalWidth(m.width)).Render(strings.Join(body, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func styleListLine(line string, cursorHere, active bool) string {
	prefix := "  "
	if cursorHere {
		prefix = cursorStyle.Render("> ")
	}
	if active {
		return prefix + selectedStyle.Render(line)
	}
	return prefix + line
}

func scrollOffset(cur, count, visible int) int {
	if visible <= 0 || count <= visible {
		return 0
	}
	start := cur - visible/2
	if start < 0 {
		start = 0
	}
	if start > count-visible {
		start = count - visible
	}
	return start
}

func containsString(items []string, needle string) bool {
	for _, item := range items {
		if item == needle {
			return true
		}
	}
	return false
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func modalWidth(width int) int {
	return maxInt(40, minInt(width-4, 80))
}

func modalInnerWidth(width int) int {
	w := modalWidth(width)
	w -= 6 // 2 border + 4 padding
	if w < 10 {
		return 10
	}
	return w
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
