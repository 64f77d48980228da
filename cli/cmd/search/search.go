package search

import (
	"fmt"
	"io"
	"strings"

	"github.com/artofest/artofest/cli/cmd"
	"github.com/artofest/artofest/cli/helpers"
	"github.com/artofest/artofest/engine/festival"
	"github.com/artofest/artofest/engine/festival/dataset"
	"github.com/artofest/artofest/pkg/logger"
	"github.com/spf13/cobra"
)

var criteriaFlags = []string{"name", "country", "genre", "place"}

// NewCommand creates the search command.
func NewCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "search",
		Short: "Search a festival dataset file",
		Long: "Load a JSON or YAML festival dataset and print the featured view, " +
			"or the festivals matching every given criterion",
		Example: "  artofest search --dataset festivals.json --country france --genre music",
		Args:    cobra.NoArgs,
		RunE:    run,
	}
	c.Flags().String("dataset", "", "Path to the dataset file (.json, .yaml, .yml)")
	c.Flags().String("name", "", "Match festival names containing this text")
	c.Flags().String("country", "", "Match countries containing this text")
	c.Flags().String("genre", "", "Match genres containing this text")
	c.Flags().String("place", "", "Match places containing this text")
	c.Flags().Int("featured", festival.DefaultFeaturedCount, "Number of festivals in the featured view")
	c.Flags().Bool("search", false, "Search even when no criterion is given")
	c.Flags().Bool("json", false, "Print the view as JSON")
	return c
}

func run(cobraCmd *cobra.Command, _ []string) error {
	ctx := cobraCmd.Context()
	cfg, err := cmd.Config(ctx)
	if err != nil {
		return err
	}
	criteria, searched, err := criteriaFromFlags(cobraCmd)
	if err != nil {
		return err
	}
	records, err := dataset.LoadFestivals(ctx, cfg.Dataset.Path)
	if err != nil {
		return err
	}
	view := festival.Resolve(records, criteria, searched, festival.WithFeaturedCount(cfg.Dataset.FeaturedCount))
	logger.FromContext(ctx).Debug("Search resolved", "state", view.State, "records", len(records))
	asJSON, err := cobraCmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("failed to get json flag: %w", err)
	}
	if asJSON {
		return helpers.WriteJSON(cobraCmd.OutOrStdout(), view)
	}
	render(cobraCmd.OutOrStdout(), &view)
	return nil
}

// criteriaFromFlags reads the criteria. Any criterion flag, even blank, or
// --search counts as a search request.
func criteriaFromFlags(c *cobra.Command) (festival.Criteria, bool, error) {
	values := make(map[string]string, len(criteriaFlags))
	searched := false
	for _, name := range criteriaFlags {
		v, err := c.Flags().GetString(name)
		if err != nil {
			return festival.Criteria{}, false, fmt.Errorf("failed to get %s flag: %w", name, err)
		}
		values[name] = v
		if c.Flags().Changed(name) {
			searched = true
		}
	}
	force, err := c.Flags().GetBool("search")
	if err != nil {
		return festival.Criteria{}, false, fmt.Errorf("failed to get search flag: %w", err)
	}
	criteria := festival.Criteria{
		Name:    values["name"],
		Country: values["country"],
		Genre:   values["genre"],
		Place:   values["place"],
	}
	return criteria, searched || force, nil
}

func render(w io.Writer, view *festival.View) {
	fmt.Fprintln(w, helpers.TitleStyle.Render(view.State.Message()))
	var list []festival.Festival
	switch view.State {
	case festival.StateFeatured:
		list = view.Featured
	case festival.StateResults:
		fmt.Fprintln(w, helpers.MutedStyle.Render(fmt.Sprintf("%d found", view.Count)))
		list = view.Results
	default:
		return
	}
	for i := range list {
		fmt.Fprintln(w)
		renderCard(w, &list[i])
	}
}

func renderCard(w io.Writer, f *festival.Festival) {
	fmt.Fprintln(w, helpers.HeadingStyle.Render(f.DisplayName()))
	details := []string{f.DisplayCountry()}
	if f.Place != "" {
		details = append(details, f.Place)
	}
	if t := f.Time.String(); t != "" {
		details = append(details, t)
	}
	fmt.Fprintln(w, helpers.MutedStyle.Render(strings.Join(details, " · ")))
	if f.Genre != "" {
		fmt.Fprintln(w, f.Genre)
	}
	if url := f.WebURL(); url != "" {
		fmt.Fprintln(w, helpers.LinkStyle.Render(url))
	}
}
