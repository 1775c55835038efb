package notification

import (
	"context"
	"log"
	"time"

	"ExamTimetabler/internal/catalog"
	"ExamTimetabler/internal/config"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NoticeService handles scheduling and sending notices.
type NoticeService struct {
	repo         *NoticeRepository
	emailService *config.EmailService
	catalogRepo  *catalog.CatalogRepository
}

// NewNoticeService creates a new NoticeService.
func NewNoticeService(repo *NoticeRepository, emailService *config.EmailService, catalogRepo *catalog.CatalogRepository) *NoticeService {
	return &NoticeService{repo: repo, emailService: emailService, catalogRepo: catalogRepo}
}

// ScheduleNotice saves a new notice to the DB.
func (s *NoticeService) ScheduleNotice(ctx context.Context, n *Notice) error {
	n.Status = "scheduled"
	n.CreatedAt = time.Now()
	n.UpdatedAt = time.Now()
	return s.repo.CreateNotice(ctx, n)
}

// SendDueNotices finds and sends all notices that are due.
func (s *NoticeService) SendDueNotices(ctx context.Context) {
	notices, err := s.repo.GetPendingNotices(ctx)
	if err != nil {
		log.Println("Failed to fetch pending notices:", err)
		return
	}
	for _, n := range notices {
		sentTo, err := s.sendNotice(ctx, n)
		if err != nil {
			log.Printf("Failed to send notice %v: %v", n.ID, err)
			s.repo.UpdateNoticeStatus(ctx, n.ID, "failed", nil)
			continue
		}
		s.repo.UpdateNoticeStatus(ctx, n.ID, "sent", sentTo)
	}
}

// sendNotice emails the notice to every student in the targeted departments.
func (s *NoticeService) sendNotice(ctx context.Context, n *Notice) ([]string, error) {
	students, err := s.catalogRepo.FindStudentsByDepartments(ctx, n.Departments)
	if err != nil {
		return nil, err
	}

	var sentTo []string
	for _, student := range students {
		if student.Email == "" {
			continue
		}
		err := s.emailService.SendEmail(student.Email, n.Subject, n.Message)
		if err == nil {
			sentTo = append(sentTo, student.Email)
		}
	}
	return sentTo, nil
}

// ListNotices fetches notices filtered by department.
func (s *NoticeService) ListNotices(ctx context.Context, department string) ([]*Notice, error) {
	return s.repo.ListNotices(ctx, department)
}

// DeleteNotice deletes a notice by ObjectID.
func (s *NoticeService) DeleteNotice(ctx context.Context, id primitive.ObjectID) error {
	return s.repo.DeleteNotice(ctx, id)
}
