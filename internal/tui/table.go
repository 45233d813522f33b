package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"redcell/internal/logging"
	"redcell/internal/model"
	"redcell/internal/system"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func renderTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)
	return t.Render()
}

// PrintImages renders the image list. Verbose level adds the identifier
// and the split download/disk size columns.
func (c *Console) PrintImages(images []model.Image) {
	if len(images) == 0 {
		c.Log.Info("No images to display")
		return
	}
	var headers []string
	var rows [][]string
	if c.Log.IsEnabledFor(logging.LevelVerbose) {
		headers = []string{"Id", "Image tag", "Download size", "Disk size", "Status", "Type"}
		for _, img := range images {
			rows = append(rows, []string{
				img.ID, img.Tag, img.DownloadSizeText(), img.DiskSizeText(),
				string(img.Status), string(img.Type),
			})
		}
	} else {
		headers = []string{"Image tag", "Size", "Status", "Type"}
		for _, img := range images {
			rows = append(rows, []string{
				img.Tag, img.SizeText(), string(img.Status), string(img.Type),
			})
		}
	}
	fmt.Fprintln(c.Out, renderTable(headers, rows))
}

// PrintContainers renders the container list. Verbose level adds the
// identifier and mount, device and environment columns; environment values
// stay redacted unless debug level is enabled.
func (c *Console) PrintContainers(containers []model.Container) {
	if len(containers) == 0 {
		c.Log.Info("No containers to display")
		return
	}
	unredacted := c.Log.IsEnabledFor(logging.LevelDebug)
	var headers []string
	var rows [][]string
	if c.Log.IsEnabledFor(logging.LevelVerbose) {
		headers = []string{"Id", "Container tag", "State", "Image tag", "Configurations", "Mounts", "Devices", "Envs"}
		for _, ctr := range containers {
			rows = append(rows, []string{
				ctr.ID, ctr.Name, ctr.StateText(), ctr.ImageTag, ctr.FeaturesText(),
				ctr.MountsText(unredacted), ctr.DevicesText(unredacted), ctr.EnvsText(unredacted),
			})
		}
	} else {
		headers = []string{"Container tag", "State", "Image tag", "Configurations"}
		for _, ctr := range containers {
			rows = append(rows, []string{
				ctr.Name, ctr.StateText(), ctr.ImageTag, ctr.FeaturesText(),
			})
		}
	}
	fmt.Fprintln(c.Out, renderTable(headers, rows))
}

// PrintStrings renders a single-column table with a caller-supplied title.
func (c *Console) PrintStrings(title string, values []string) {
	if len(values) == 0 {
		c.Log.Info("Nothing to display")
		return
	}
	rows := make([][]string, len(values))
	for i, v := range values {
		rows[i] = []string{v}
	}
	fmt.Fprintln(c.Out, renderTable([]string{title}, rows))
}

// PrintVitals renders host resource usage for the info command.
func (c *Console) PrintVitals(v system.Vitals) {
	fmt.Fprintln(c.Out, renderTable([]string{"Resource", "Value"}, v.Rows()))
}

// PrintVersion renders build metadata as a two-column table.
func (c *Console) PrintVersion(pairs [][]string) {
	fmt.Fprintln(c.Out, renderTable([]string{"Component", "Version"}, pairs))
}
