package commands

import (
	"github.com/penwyp/go-eddington/internal/presentation/formatter"
	"github.com/spf13/cobra"
)

// Each report section is exposed as its own subcommand, so a single
// section can be queried without rendering the whole summary.
var sectionCommands = []struct {
	use     string
	short   string
	section formatter.Section
}{
	{"summary", "Display the full statistics summary", formatter.SectionSummary},
	{"eddington", "Show Eddington number progress", formatter.SectionEddington},
	{"ytd", "Show year-to-date statistics", formatter.SectionYTD},
	{"yearly", "Show yearly Eddington numbers", formatter.SectionYearly},
	{"metrics", "Show ride metrics", formatter.SectionMetrics},
	{"distribution", "Show ride distance distribution", formatter.SectionDistribution},
	{"milestones", "Show distance achievements", formatter.SectionMilestones},
	{"longest", "Show the longest rides", formatter.SectionLongest},
	{"monthly", "Show monthly statistics", formatter.SectionMonthly},
}

func init() {
	for _, sc := range sectionCommands {
		section := sc.section
		rootCmd.AddCommand(&cobra.Command{
			Use:   sc.use,
			Short: sc.short,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runSection(cmd, section)
			},
		})
	}
}
