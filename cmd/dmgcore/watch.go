package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/pixelwell/dmgcore/pkg/cpu"
	"github.com/pixelwell/dmgcore/pkg/mem"
	"github.com/pixelwell/dmgcore/pkg/ppu"
	"github.com/pixelwell/dmgcore/pkg/present"
)

// watchModel is a single-step TUI debugger, grounded on hejops-gone's
// cpu.model: a key press advances the machine, the view re-renders the
// register file and tile cache.
type watchModel struct {
	c   *cpu.CPU
	p   *ppu.PPU
	err error
}

func (m watchModel) Init() tea.Cmd { return nil }

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ", "n":
		if !m.c.Halted {
			if err := m.c.Step(); err != nil {
				m.err = err
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m watchModel) status() string {
	r := m.c.Regs
	return fmt.Sprintf(
		"PC:%04X SP:%04X  A:%02X F:%02X  B:%02X C:%02X  D:%02X E:%02X  H:%02X L:%02X  halted:%v",
		m.c.PC, r.SP, r.A, r.F, r.B, r.C, r.D, r.E, r.H, r.L, m.c.Halted,
	)
}

func (m watchModel) View() string {
	help := lipgloss.NewStyle().Faint(true).Render("space/n: step   q: quit")
	return lipgloss.JoinVertical(lipgloss.Left, m.status(), "", present.RenderANSI(m.p), help)
}

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [rom]",
		Short: "Interactively single-step a ROM and watch tiles decode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := ppu.New()
			bus := mem.New(p)
			image, err := loadROMFile(bus, args[0])
			if err != nil {
				return err
			}

			c := cpu.New(bus)
			c.SetROMSize(len(image))

			result, err := tea.NewProgram(watchModel{c: c, p: p}).Run()
			if err != nil {
				return err
			}
			if final, ok := result.(watchModel); ok && final.err != nil {
				return final.err
			}
			return nil
		},
	}
	return cmd
}
