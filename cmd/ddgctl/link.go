package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/corricelli/NGSS-Dynamic-Data-Gem/app"
	"github.com/corricelli/NGSS-Dynamic-Data-Gem/domain/submission"
)

func newLinkCmd(src *sourceFlags) *cobra.Command {
	var (
		peID     string
		email    string
		sets     []string
		endpoint string
	)

	cmd := &cobra.Command{
		Use:   "link",
		Short: "Build the external form link for one request without the web form",
		Long: `Build the link the web form would produce. Values are clamped to each control's
bounds and step exactly as the sliders do.

Example: ddgctl link --pe-id LS2-1 --email teacher@school.edu --set L_param=12000 --set Noise_Sigma=350`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if endpoint == "" {
				endpoint = os.Getenv("FORM_ENDPOINT_URL")
			}
			if endpoint == "" {
				return fmt.Errorf("--endpoint or FORM_ENDPOINT_URL is required")
			}

			values, err := parseSets(sets)
			if err != nil {
				return err
			}

			cat, err := src.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			encoder, err := submission.NewEncoder(endpoint, cat)
			if err != nil {
				return err
			}
			forms := app.NewFormService(cat, encoder, nil)

			state, err := forms.Build(app.FormRequest{PEID: peID, Email: email, Values: values})
			if err != nil {
				return err
			}
			sub, err := forms.Submit(state)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, sub.URL)
			for _, pair := range sub.Summary {
				fmt.Fprintf(out, "  %-12s %s\n", pair.Name, pair.Value)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&peID, "pe-id", "", "Phenomenon category (PE ID)")
	cmd.Flags().StringVar(&email, "email", "", "Address the data set is sent to")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Parameter value as name=value (repeatable)")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "Form endpoint URL (default $FORM_ENDPOINT_URL)")
	return cmd
}

func parseSets(sets []string) (map[string]float64, error) {
	values := make(map[string]float64, len(sets))
	for _, s := range sets {
		name, raw, ok := strings.Cut(s, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --set %q, want name=value", s)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: %w", name, err)
		}
		values[name] = v
	}
	return values, nil
}
