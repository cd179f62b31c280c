package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yfndev/ybudget/internal/id"
	"github.com/yfndev/ybudget/internal/model"
)

func newProjectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects (cost centers)",
	}

	var parentFlag string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := openWorkspace(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			parentID, err := id.Parse(parentFlag)
			if err != nil {
				return err
			}

			p := model.Project{
				ID:             id.New(),
				OrganizationID: w.orgID,
				Name:           args[0],
				ParentID:       parentID,
			}
			if err := w.mem.Projects().Insert(ctx, p); err != nil {
				return err
			}
			if err := w.saveBooks(ctx); err != nil {
				return err
			}
			w.commit(fmt.Sprintf("project: add %q", args[0]))

			fmt.Fprintf(cmd.OutOrStdout(), "Added project %s (%s).\n", args[0], id.Short(p.ID))
			return nil
		},
	}
	add.Flags().StringVar(&parentFlag, "parent", "", "parent project id")

	list := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, _ []string) error {
			w, err := openWorkspace(cmd)
			if err != nil {
				return err
			}
			projects, err := w.mem.Projects().List(cmd.Context(), w.orgID)
			if err != nil {
				return err
			}
			for _, p := range projects {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", p.ID, p.Name)
			}
			return nil
		},
	}

	cmd.AddCommand(add, list)
	return cmd
}

func newDonorCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "donor",
		Short: "Manage donors and their allowed tax spheres",
	}

	var spheresFlag string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a donor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := openWorkspace(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			var spheres []model.TaxSphere
			for _, s := range strings.Split(spheresFlag, ",") {
				s = strings.TrimSpace(s)
				if s == "" {
					continue
				}
				sphere := model.TaxSphere(s)
				if !sphere.Valid() {
					return fmt.Errorf("unknown tax sphere %q", s)
				}
				spheres = append(spheres, sphere)
			}
			if len(spheres) == 0 {
				return fmt.Errorf("--spheres must name at least one tax sphere")
			}

			d := model.Donor{
				ID:                id.New(),
				OrganizationID:    w.orgID,
				Name:              args[0],
				AllowedTaxSpheres: spheres,
			}
			if err := w.mem.Donors().Insert(ctx, d); err != nil {
				return err
			}
			if err := w.saveBooks(ctx); err != nil {
				return err
			}
			w.commit(fmt.Sprintf("donor: add %q", args[0]))

			fmt.Fprintf(cmd.OutOrStdout(), "Added donor %s (%s).\n", args[0], id.Short(d.ID))
			return nil
		},
	}
	add.Flags().StringVar(&spheresFlag, "spheres", string(model.TaxSphereNonProfit),
		"comma-separated allowed tax spheres")

	list := &cobra.Command{
		Use:   "list",
		Short: "List donors",
		RunE: func(cmd *cobra.Command, _ []string) error {
			w, err := openWorkspace(cmd)
			if err != nil {
				return err
			}
			donors, err := w.mem.Donors().List(cmd.Context(), w.orgID)
			if err != nil {
				return err
			}
			for _, d := range donors {
				spheres := make([]string, len(d.AllowedTaxSpheres))
				for i, s := range d.AllowedTaxSpheres {
					spheres[i] = string(s)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  [%s]\n", d.ID, d.Name, strings.Join(spheres, ", "))
			}
			return nil
		},
	}

	cmd.AddCommand(add, list)
	return cmd
}

func newCategoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories with their tax spheres",
		RunE: func(cmd *cobra.Command, _ []string) error {
			w, err := openWorkspace(cmd)
			if err != nil {
				return err
			}
			categories, err := w.mem.Categories().List(cmd.Context(), w.orgID)
			if err != nil {
				return err
			}
			for _, c := range categories {
				indent := ""
				if !c.IsGroup() {
					indent = "  "
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s%s  %s  (%s)\n", indent, c.ID, c.Name, c.TaxSphere)
			}
			return nil
		},
	}
}
