package backup

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/shtick/cmd/shtick/commands/flags"
	"github.com/thoreinstein/shtick/internal/backup"
	"github.com/thoreinstein/shtick/internal/errors"
)

var listJSON bool

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")
	Cmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available backups",
	Long:  `List every backup, most recent first.`,
	Example: `  shtick backup list
  shtick backup list --json

  See Also:
    shtick backup restore - Restore from a backup
    shtick backup prune   - Remove old backups`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runListWithWriter(os.Stdout)
	},
}

// infoOutput represents a single backup in JSON output.
type infoOutput struct {
	ID            string    `json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	FileCount     int       `json:"file_count"`
	ShtickVersion string    `json:"shtick_version"`
}

func runListWithWriter(w io.Writer) error {
	mgr := backup.NewManager(flags.GetConfigDir())

	manifests, err := mgr.List()
	if err != nil && !errors.Is(err, backup.ErrNoBackupsFound) {
		return errors.Wrap(err, "listing backups")
	}

	if listJSON {
		output := make([]infoOutput, len(manifests))
		for i, m := range manifests {
			output[i] = infoOutput{
				ID:            m.ID,
				CreatedAt:     m.CreatedAt,
				FileCount:     len(m.Files),
				ShtickVersion: m.ShtickVersion,
			}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(output), "encoding output")
	}

	if len(manifests) == 0 {
		fmt.Fprintln(w, "No backups available")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Enable automatic snapshots with: shtick settings set behavior.backup_on_save true")
		fmt.Fprintln(w, "Or create one now with: shtick backup create")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%sID\tCREATED\tFILES\tVERSION%s\n", colorBold, colorReset)
	for _, m := range manifests {
		fmt.Fprintf(tw, "%s%s%s\t%s\t%d\t%s\n",
			colorGreen, m.ID, colorReset,
			m.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			len(m.Files),
			m.ShtickVersion)
	}
	return tw.Flush()
}
