package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/linka-app/linka/internal/api"
	"github.com/linka-app/linka/internal/lawyer"
)

var lawyersCmd = &cobra.Command{
	Use:   "lawyers",
	Short: "Browse the lawyer directory",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var lawyersSpecialization string

var lawyersSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search lawyers by specialization",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		svc := lawyer.NewService(a.client)
		lawyers, err := svc.Search(cmd.Context(), lawyersSpecialization)
		if err != nil {
			return err
		}
		if len(lawyers) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No lawyers found.")
			return nil
		}
		for _, lw := range lawyers {
			fmt.Fprintf(cmd.OutOrStdout(), "#%d  %-20s %s\n", lw.ID, lw.LawyerName.Val, specializations(lw))
		}
		return nil
	},
}

var lawyersShowCmd = &cobra.Command{
	Use:   "show <lawyer-id>",
	Short: "Show a lawyer profile with reviews",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid lawyer id %q", args[0])
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.requireAuth(); err != nil {
			return err
		}
		svc := lawyer.NewService(a.client)
		lw, err := svc.Get(cmd.Context(), id)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Name:            %s\n", lw.LawyerName.Val)
		fmt.Fprintf(out, "Specializations: %s\n", specializations(lw))
		if lw.Bio.Val != "" {
			fmt.Fprintf(out, "Bio:             %s\n", lw.Bio.Val)
		}

		reviews, err := svc.Reviews(cmd.Context(), id)
		if err != nil {
			return err
		}
		if len(reviews) > 0 {
			fmt.Fprintln(out, "\nReviews:")
			for _, r := range reviews {
				fmt.Fprintf(out, "  [%s] %s\n", r.CaseType, r.Review.Val)
			}
		}
		return nil
	},
}

var lawyersReviewCaseType string

var lawyersReviewCmd = &cobra.Command{
	Use:   "review <lawyer-id> <text>",
	Short: "Post a review for a lawyer",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid lawyer id %q", args[0])
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.requireAuth(); err != nil {
			return err
		}
		svc := lawyer.NewService(a.client)
		text := strings.Join(args[1:], " ")
		if _, err := svc.AddReview(cmd.Context(), id, text, lawyersReviewCaseType); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Review posted.")
		return nil
	},
}

func init() {
	lawyersSearchCmd.Flags().StringVar(&lawyersSpecialization, "specialization", "", "Filter by specialization")
	lawyersReviewCmd.Flags().StringVar(&lawyersReviewCaseType, "case-type", "", "Case type the review relates to")

	lawyersCmd.AddCommand(lawyersSearchCmd)
	lawyersCmd.AddCommand(lawyersShowCmd)
	lawyersCmd.AddCommand(lawyersReviewCmd)
}

func specializations(lw api.Lawyer) string {
	parts := make([]string, 0, len(lw.Specializations))
	for _, s := range lw.Specializations {
		parts = append(parts, s.Val)
	}
	return strings.Join(parts, ", ")
}
