package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/studiofront/internal/cards"
)

var cardsJSON bool

var cardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "Load the project cards and print them",
	Long: `Loads the cards from the configured source exactly as a viewer would. When
loading fails the sample projects are printed along with the reason.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		b, err := openBackend(cfg)
		if err != nil {
			return err
		}
		defer b.Close()

		store := cards.NewStore(b.source, logger.Named("cards"))
		list, loadErr := store.Load(cmd.Context())
		if loadErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: %s, showing sample projects\n", fallbackReason(loadErr))
		}

		if cardsJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Cards   []cards.Card        `json:"cards"`
				Gallery []cards.GalleryItem `json:"gallery"`
			}{list, cards.Gallery(list)})
		}

		out := cmd.OutOrStdout()
		for i, c := range list {
			like := ""
			if c.Liked {
				like = " (liked)"
			}
			fmt.Fprintf(out, "%d. %-12s %-10s %d photos, %d likes%s\n", i+1, c.ID, c.Area, len(c.Photos), c.Likes, like)
		}
		fmt.Fprintf(out, "\n%d cards, %d gallery photos\n", len(list), len(cards.Gallery(list)))
		return nil
	},
}

func fallbackReason(err error) string {
	switch {
	case errors.Is(err, cards.ErrEmpty):
		return "no projects found"
	case errors.Is(err, cards.ErrParse):
		return "project data could not be read"
	default:
		return "projects could not be fetched"
	}
}

func init() {
	cardsCmd.Flags().BoolVar(&cardsJSON, "json", false, "print cards and gallery as JSON")
	rootCmd.AddCommand(cardsCmd)
}
