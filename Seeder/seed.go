package Seeder

import (
	"AgencyHub/Models"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/yosuke-furukawa/json5/encoding/json5"
	"gorm.io/gorm"
)

// seedFile is the on-disk shape of the seed fixture. Dates come in as
// YYYY-MM-DD strings so the fixture stays hand-editable.
type seedFile struct {
	Clients []struct {
		Name        string   `json:"name"`
		ClientName  string   `json:"client_name"`
		Description string   `json:"description"`
		Phase       string   `json:"phase"`
		Type        string   `json:"type"`
		Team        []string `json:"team"`
		Tasks       []struct {
			Department  string   `json:"department"`
			Title       string   `json:"title"`
			Description string   `json:"description"`
			InfoType    string   `json:"info_type"`
			Priority    string   `json:"priority"`
			DueDate     string   `json:"due_date"`
			Responsible string   `json:"responsible"`
			Accountable string   `json:"accountable"`
			Consulted   []string `json:"consulted"`
			Informed    []string `json:"informed"`
			Platform    string   `json:"platform"`
			Pillar      string   `json:"pillar"`
		} `json:"tasks"`
		Content []struct {
			Week            string `json:"semana"`
			Date            string `json:"fecha"`
			Platform        string `json:"plataforma"`
			PublicationType string `json:"tipo_publicacion"`
			Pillar          string `json:"pilar"`
			PublicationCopy string `json:"copy_publicacion"`
		} `json:"content"`
	} `json:"clients"`
}

// Run loads the fixture at path and inserts it. It is a no-op when any
// client already exists, so calling it on every boot is safe.
func Run(db *gorm.DB, path string) error {
	var count int64
	if err := db.Model(&Models.Client{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Seeder: clients already present, skipping")
		return nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("Seeder: reading %s: %w", path, err)
	}
	var file seedFile
	if err := json5.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("Seeder: parsing %s: %w", path, err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, c := range file.Clients {
			client := Models.Client{
				Name:        c.Name,
				ClientName:  c.ClientName,
				Description: c.Description,
				Phase:       c.Phase,
				Type:        c.Type,
				Team:        c.Team,
			}
			if err := tx.Create(&client).Error; err != nil {
				return err
			}
			for _, t := range c.Tasks {
				task := Models.TaskItem{
					ClientID:        client.ID,
					Department:      Models.Department(t.Department),
					Title:           t.Title,
					Description:     t.Description,
					InfoType:        Models.InfoType(t.InfoType),
					Priority:        Models.PriorityLevel(t.Priority),
					ResponsibleUser: t.Responsible,
					AccountableUser: t.Accountable,
					ConsultedUsers:  t.Consulted,
					InformedUsers:   t.Informed,
					Platform:        t.Platform,
					Pillar:          t.Pillar,
				}
				if due := parseDate(t.DueDate); due != nil {
					task.DueDate = due
				}
				if err := tx.Create(&task).Error; err != nil {
					return err
				}
			}
			for _, row := range c.Content {
				date := parseDate(row.Date)
				if date == nil {
					continue
				}
				content := Models.CommunityContent{
					ClientID:        client.ID,
					Week:            row.Week,
					Date:            *date,
					Platform:        row.Platform,
					PublicationType: row.PublicationType,
					Pillar:          row.Pillar,
					PublicationCopy: row.PublicationCopy,
				}
				if err := tx.Create(&content).Error; err != nil {
					return err
				}
			}
		}
		log.Printf("Seeder: inserted %d clients", len(file.Clients))
		return nil
	})
}

func parseDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil
	}
	return &t
}
