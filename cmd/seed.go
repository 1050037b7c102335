/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/bp4sp4/NMS-System-sub000/internal/config"
	"github.com/bp4sp4/NMS-System-sub000/internal/database"
	"github.com/bp4sp4/NMS-System-sub000/internal/model"
	"github.com/bp4sp4/NMS-System-sub000/internal/routing"
)

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed initial parties and templates",
	Long: `Seed the database with the initial organization roster and
a set of standard approval templates. Existing rows with the same
primary key are left untouched, so the command is safe to re-run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect database: %w", err)
		}
		defer func() {
			sqlDB, _ := db.DB()
			if sqlDB != nil {
				sqlDB.Close()
			}
		}()

		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		if err := seedParties(db); err != nil {
			return fmt.Errorf("failed to seed parties: %w", err)
		}
		if err := seedTemplates(db); err != nil {
			return fmt.Errorf("failed to seed templates: %w", err)
		}

		log.Println("Seed completed successfully!")
		return nil
	},
}

// seedParties 写入初始组织名册
// 密码统一为工号, 上线后由用户自行修改
func seedParties(db *gorm.DB) error {
	roster := []struct {
		ID    string
		Name  string
		Unit  string
		Team  string
		Title string
		Email string
	}{
		{"p-0001", "관리자", "경영지원팀", "", "시스템관리자", "admin@nms.co.kr"},
		{"p-0002", "홍대표", "경영지원팀", "", "대표", "ceo@nms.co.kr"},
		{"p-0003", "박실장", "경영지원팀", "", "부서장", "hq@nms.co.kr"},
		{"p-0004", "정이사", "경영지원팀", "", "이사", "director@nms.co.kr"},
		{"p-0005", "김부장", "경영지원팀", "인사", "팀장", "hr@nms.co.kr"},
		{"p-0006", "이과장", "회계팀", "", "회계팀장", "acct@nms.co.kr"},
		{"p-0007", "최팀장", "영업팀", "1팀", "영업팀장", "sales1@nms.co.kr"},
		{"p-0008", "최사원", "영업팀", "1팀", "사원", "sales2@nms.co.kr"},
		{"p-0009", "정대리", "개발팀", "플랫폼", "대리", "dev1@nms.co.kr"},
	}

	for _, row := range roster {
		hash, err := bcrypt.GenerateFromPassword([]byte(row.ID), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		party := model.PartyModel{
			ID:           row.ID,
			Name:         row.Name,
			Unit:         row.Unit,
			Team:         row.Team,
			Title:        row.Title,
			Email:        row.Email,
			PasswordHash: string(hash),
		}
		result := db.Where("id = ?", party.ID).FirstOrCreate(&party)
		if result.Error != nil {
			return result.Error
		}
	}
	log.Printf("Seeded %d parties", len(roster))
	return nil
}

// seedTemplates 写入标准审批模板
func seedTemplates(db *gorm.DB) error {
	maxDays := 30.0
	templates := []struct {
		Name        string
		Category    string
		Description string
		OwnerUnit   string
		SortKey     int
		Fields      []model.FieldSchema
		Flow        []model.FlowStep
	}{
		{
			Name:        "휴가신청서",
			Category:    "근태",
			Description: "연차/반차 휴가 신청",
			SortKey:     10,
			Fields: []model.FieldSchema{
				{Name: "start_date", Label: "시작일", Kind: model.FieldKindDate, Required: true},
				{Name: "end_date", Label: "종료일", Kind: model.FieldKindDate, Required: true},
				{Name: "days", Label: "일수", Kind: model.FieldKindNumber, Required: true, Max: &maxDays},
				{Name: "reason", Label: "사유", Kind: model.FieldKindText},
			},
			Flow: []model.FlowStep{
				{Order: 1, Role: string(routing.RoleChiefExecutive), Required: true},
			},
		},
		{
			Name:        "지출결의서",
			Category:    "회계",
			Description: "비용 지출 승인 요청",
			SortKey:     20,
			Fields: []model.FieldSchema{
				{Name: "amount", Label: "금액", Kind: model.FieldKindNumber, Required: true},
				{Name: "usage", Label: "용도", Kind: model.FieldKindText, Required: true},
				{Name: "pay_date", Label: "지급일", Kind: model.FieldKindDate},
			},
			Flow: []model.FlowStep{
				{Order: 1, Role: string(routing.RoleChiefExecutive), Required: true},
				{Order: 2, Role: string(routing.RoleAccountingLead), Required: false},
			},
		},
		{
			Name:        "영업보고서",
			Category:    "영업",
			Description: "주간 영업 실적 보고",
			OwnerUnit:   "영업팀",
			SortKey:     30,
			Fields: []model.FieldSchema{
				{Name: "period", Label: "보고기간", Kind: model.FieldKindText, Required: true},
				{Name: "summary", Label: "요약", Kind: model.FieldKindText, Required: true},
				{Name: "grade", Label: "자체평가", Kind: model.FieldKindSelect, Options: []string{"A", "B", "C"}},
			},
			Flow: []model.FlowStep{
				{Order: 1, Role: string(routing.RoleSalesLead), Required: true},
			},
		},
	}

	for _, t := range templates {
		var count int64
		if err := db.Model(&model.TemplateModel{}).Where("name = ?", t.Name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		tm := model.TemplateModel{
			ID:          uuid.New().String(),
			Name:        t.Name,
			Category:    t.Category,
			Description: t.Description,
			OwnerUnit:   t.OwnerUnit,
			Active:      true,
			SortKey:     t.SortKey,
			CreatedBy:   "p-0001",
			UpdatedBy:   "p-0001",
		}
		if err := tm.SetFieldSchemas(t.Fields); err != nil {
			return err
		}
		if err := tm.SetFlowSteps(t.Flow); err != nil {
			return err
		}
		if err := db.Create(&tm).Error; err != nil {
			return err
		}
	}
	log.Printf("Seeded %d templates", len(templates))
	return nil
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().String("config", "", "Config file path (default: config.yaml)")
}
