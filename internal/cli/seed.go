package cli

import (
	"fmt"

	"inventory/internal/seed"

	"github.com/spf13/cobra"
)

var (
	// Seed flags
	seedUsername string
)

// seedCmd groups the data seeding commands
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demonstration data",
}

var seedSampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Create a test user with sample categories and products",
	Long: `Create the test user (` + seed.SampleUsername + `/` + seed.SamplePassword + `), eight categories
and forty products owned by that user. Existing rows are reused, so the command
can be run repeatedly. Stock quantities are random.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed(cmd, func(s *seed.Seeder) (seed.Result, error) {
			return s.Sample(cmd.Context())
		})
	},
}

var seedUserProductsCmd = &cobra.Command{
	Use:   "user-products",
	Short: "Add sample products for an existing user",
	Long: `Add forty sample products owned by an existing user, to exercise pagination.

Examples:
  toko seed user-products --username asdf`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed(cmd, func(s *seed.Seeder) (seed.Result, error) {
			return s.UserProducts(cmd.Context(), seedUsername)
		})
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.AddCommand(seedSampleCmd, seedUserProductsCmd)

	seedUserProductsCmd.Flags().StringVarP(&seedUsername, "username", "u", "", "Owner of the new products (required)")
	_ = seedUserProductsCmd.MarkFlagRequired("username")
}

func runSeed(cmd *cobra.Command, run func(*seed.Seeder) (seed.Result, error)) error {
	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	db, closeDB, err := rt.openDB()
	if err != nil {
		return err
	}
	defer closeDB()

	res, err := run(seed.NewSeeder(db, rt.log))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if res.UserCreated {
		fmt.Fprintf(out, "Created test user: %s/%s\n", seed.SampleUsername, seed.SamplePassword)
	}
	fmt.Fprintf(out, "Created %d categories and %d products. The user now owns %d products.\n",
		res.CategoriesCreated, res.ProductsCreated, res.TotalProducts)
	return nil
}
