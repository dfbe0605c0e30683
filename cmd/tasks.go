package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nextlevelbuilder/cloudeng/internal/agent"
)

func tasksCmd() *cobra.Command {
	var jsonOutput bool
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List the predefined cloud-engineering tasks",
		Run: func(cmd *cobra.Command, args []string) {
			runTasksList(jsonOutput)
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}

func runTasksList(jsonOutput bool) {
	if jsonOutput {
		data, _ := json.MarshalIndent(agent.PredefinedTasks, "", "  ")
		fmt.Println(string(data))
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTASK")
	for _, t := range agent.PredefinedTasks {
		fmt.Fprintf(w, "%s\t%s\n", t.ID, t.Prompt)
	}
	w.Flush()
}
