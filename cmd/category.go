package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "List categories or change their visibility",
	Args:  cobra.NoArgs,
	RunE:  runCategoryList,
}

var categoryShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Make a category visible",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setCategory(cmd, args[0], true)
	},
}

var categoryHideCmd = &cobra.Command{
	Use:   "hide ID",
	Short: "Hide a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setCategory(cmd, args[0], false)
	},
}

func init() {
	categoryCmd.AddCommand(categoryShowCmd, categoryHideCmd)
	rootCmd.AddCommand(categoryCmd)
}

func runCategoryList(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)
	s, err := openSession(cmd.Context(), printer)
	if err != nil {
		return err
	}
	defer s.close()

	printer.Categories(s.model)
	return nil
}

func setCategory(cmd *cobra.Command, id string, visible bool) error {
	printer := newPrinter(cmd)
	s, err := openSession(cmd.Context(), printer)
	if err != nil {
		return err
	}
	defer s.close()

	cat, err := s.category(id)
	if err != nil {
		return err
	}
	cf := s.model.CategoryFilter()
	if visible {
		err = cf.ShowCategory(cat.CategoryID())
	} else {
		err = cf.HideCategory(cat.CategoryID())
	}
	s.CategoryToggled(cat.CategoryID(), visible)
	if err != nil {
		return fmt.Errorf("failed to save category %s: %w", id, err)
	}
	printer.CategoryToggled(cat.DisplayName(), visible)
	return nil
}
