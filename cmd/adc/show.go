package main

import (
	"fmt"

	"github.com/franz/ai-directors-chair/internal/store"
	"github.com/franz/ai-directors-chair/internal/util"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [project-id]",
	Short: "Show projects, scenes and generation jobs",
	Long: `Display the contents of the project store in a human-readable
format. Without arguments all projects are listed; with a project id
its characters and scenes are shown, scenes in playback order with
their generation jobs.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().Bool("jobs", false, "Show generation jobs per scene")
}

func runShow(cmd *cobra.Command, args []string) error {
	showJobs, _ := cmd.Flags().GetBool("jobs")

	db, err := store.Open(dbPath())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if len(args) == 0 {
		return showProjects(db)
	}
	return showProject(db, args[0], showJobs)
}

func showProjects(db *store.Store) error {
	projects, err := db.ListProjects()
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}

	if len(projects) == 0 {
		util.WarnLog("No projects found.")
		return nil
	}

	util.InfoLog("=== Projects ===")
	for _, p := range projects {
		scenes, err := db.ListScenesByProject(p.ID)
		if err != nil {
			return err
		}
		characters, err := db.ListCharactersByProject(p.ID)
		if err != nil {
			return err
		}

		fmt.Printf("  %s  %s (%s, %s)\n", p.ID, p.Name, p.Genre, p.Tone)
		fmt.Printf("      Scenes: %d  Characters: %d  Updated: %s\n",
			len(scenes), len(characters), p.UpdatedAt)
	}

	util.InfoLog("")
	util.InfoLog("To inspect a project: adc show <project-id>")
	return nil
}

func showProject(db *store.Store, id string, showJobs bool) error {
	p, err := db.GetProject(id)
	if err != nil {
		return err
	}

	util.InfoLog("=== %s ===", p.Name)
	util.InfoLog("Genre: %s  Tone: %s", p.Genre, p.Tone)
	if p.Synopsis != "" {
		util.InfoLog("Synopsis: %s", p.Synopsis)
	}

	characters, err := db.ListCharactersByProject(p.ID)
	if err != nil {
		return err
	}
	if len(characters) > 0 {
		fmt.Println()
		util.InfoLog("Characters:")
		for _, c := range characters {
			fmt.Printf("  - %s (%s)\n", c.Name, c.ID)
		}
	}

	scenes, err := db.ListScenesByProject(p.ID)
	if err != nil {
		return err
	}
	if len(scenes) == 0 {
		util.WarnLog("No scenes yet.")
		return nil
	}

	fmt.Println()
	util.InfoLog("Scenes (playback order):")
	for _, sc := range scenes {
		fmt.Printf("  %3d. [%s] Scene %d", sc.SortOrder, sc.Status, sc.SceneNumber)
		if sc.Title != "" {
			fmt.Printf(" - %s", sc.Title)
		}
		fmt.Printf(" (%ds, %s, %s)\n", sc.Duration, sc.CameraAngle, sc.Lighting)

		// Soft references: only characters that still exist
		cast, err := db.ResolveSceneCharacters(sc)
		if err != nil {
			return err
		}
		if len(cast) > 0 {
			names := make([]string, 0, len(cast))
			for _, c := range cast {
				names = append(names, c.Name)
			}
			fmt.Printf("       Cast: %v\n", names)
		}

		if showJobs {
			jobs, err := db.ListVideoJobsByScene(sc.ID)
			if err != nil {
				return err
			}
			for _, j := range jobs {
				fmt.Printf("       Job %s via %s: %s", j.JobID, j.Provider, j.Status)
				if j.Cost > 0 {
					fmt.Printf(" ($%.2f)", j.Cost)
				}
				if j.CompletedAt != "" {
					fmt.Printf(" completed %s", j.CompletedAt)
				}
				fmt.Println()
			}
		}
	}

	return nil
}
