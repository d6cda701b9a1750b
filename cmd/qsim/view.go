package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/elikkatzgit/quantumsim"
)

var viewCmd = &cobra.Command{
	Use:   "view <circuit.toml>",
	Short: "Browse the scheduled timeline interactively",
	Args:  cobra.ExactArgs(1),
	RunE:  runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	circuit, err := loadCircuit(args[0])
	if err != nil {
		return err
	}

	m := viewModel{
		title:   circuit.Title,
		content: quantumsim.RenderTimeline(circuit),
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// viewModel scrolls the rendered timeline in a viewport.
type viewModel struct {
	title   string
	content string
	vp      viewport.Model
	ready   bool
}

func (m viewModel) Init() tea.Cmd {
	return nil
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		headerH := 1
		footerH := 1
		if !m.ready {
			m.vp = viewport.New(msg.Width, msg.Height-headerH-footerH)
			m.vp.SetContent(m.content)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = msg.Height - headerH - footerH
		}
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m viewModel) View() string {
	if !m.ready {
		return "loading..."
	}
	return fmt.Sprintf("%s\n%s\n%s",
		m.title,
		m.vp.View(),
		"↑↓/jk scroll  q quit")
}
