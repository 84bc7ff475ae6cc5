package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/templui/scheduletable/internal/db"
	"github.com/templui/scheduletable/internal/model"
	"github.com/templui/scheduletable/internal/repository"
	"github.com/templui/scheduletable/internal/service"
)

var sampleEntries = []model.EntryInput{
	{Title: "Standup", Person: "Louis", Context: "Training", Day: "2", Type: model.EntryTypeMeeting, TimeSlot: model.TimeSlotAM},
	{Title: "Release notes", Person: "Louis", Context: "Documentation", Day: "2", Type: model.EntryTypeTask, TimeSlot: model.TimeSlotAM},
	{Title: "Patch servers", Person: "Nilson", Context: "Maintenance", Day: "1", Type: model.EntryTypeTask, TimeSlot: model.TimeSlotPM},
	{Title: "Renew cert", Person: "Nilson", Context: "Certification", Day: "TBD", Type: model.EntryTypeReminder, TimeSlot: model.TimeSlotReminder},
	{Title: "Uptime report", Person: "Jaden", Context: "Reporting", Day: "5", Type: model.EntryTypeKPI, TimeSlot: model.TimeSlotPM},
	{Title: "EMS cutover", Person: "Jaden", Context: "EMS Migration", Day: "3", Type: model.EntryTypeMeeting, TimeSlot: model.TimeSlotAM},
}

func SeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert sample schedule entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, database, err := openDB()
			if err != nil {
				return err
			}
			defer database.Close()

			err = db.RunMigrations(database.DB, cfg.DBDriver)
			if err != nil {
				return err
			}

			// No live sessions run in this process, so there is nobody to notify
			svc := service.NewScheduleService(repository.NewScheduleEntryRepository(database), nil, nil)
			for _, in := range sampleEntries {
				_, err := svc.Create(in)
				if err != nil {
					return fmt.Errorf("failed to seed %q: %w", in.Title, err)
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d entries\n", len(sampleEntries))
			return nil
		},
	}
}
