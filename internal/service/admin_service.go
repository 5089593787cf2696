package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"anoa.com/campuscircle/internal/dto"
	"anoa.com/campuscircle/internal/model"
	"anoa.com/campuscircle/internal/repository"
	"anoa.com/campuscircle/pkg/apperror"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	defaultRosterLimit = 50
	maxRosterLimit     = 200

	statsCacheKey = "admin:stats"
	statsCacheTTL = time.Minute
)

type AdminService interface {
	ListStudents(ctx context.Context, page, limit int) (*dto.PaginatedStudentsResponse, error)
	CreateStudent(ctx context.Context, input dto.CreateStudentRequest) (*model.Student, error)
	BulkCreateStudents(ctx context.Context, input dto.BulkStudentsRequest) (*dto.BulkStudentsResponse, error)
	UpdateStudent(ctx context.Context, id uuid.UUID, input dto.UpdateStudentRequest) (*model.Student, error)
	DeleteStudent(ctx context.Context, id uuid.UUID) error
	ListUsers(ctx context.Context) ([]dto.ProfileResponse, error)
	ListPosts(ctx context.Context) ([]dto.PostResponse, error)
	DeletePost(ctx context.Context, postID uuid.UUID) error
	Stats(ctx context.Context) (*dto.StatsResponse, error)
}

type adminService struct {
	students  repository.StudentRepository
	users     repository.UserRepository
	posts     repository.PostRepository
	directory DirectoryService
	rdb       *redis.Client
}

func NewAdminService(students repository.StudentRepository, users repository.UserRepository, posts repository.PostRepository, directory DirectoryService, rdb *redis.Client) AdminService {
	return &adminService{
		students:  students,
		users:     users,
		posts:     posts,
		directory: directory,
		rdb:       rdb,
	}
}

func (s *adminService) ListStudents(ctx context.Context, page, limit int) (*dto.PaginatedStudentsResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultRosterLimit
	}
	if limit > maxRosterLimit {
		limit = maxRosterLimit
	}

	students, total, err := s.students.FindPage(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	return &dto.PaginatedStudentsResponse{
		Students:      students,
		CurrentPage:   page,
		TotalPages:    int(math.Ceil(float64(total) / float64(limit))),
		TotalStudents: total,
	}, nil
}

func (s *adminService) CreateStudent(ctx context.Context, input dto.CreateStudentRequest) (*model.Student, error) {
	student, err := s.createOne(ctx, dto.BulkStudentRecord(input))
	if err != nil {
		return nil, err
	}
	s.invalidateStats(ctx)
	return student, nil
}

// createOne validates and inserts a single roster entry. Bulk uploads reuse it
// per record so both paths enforce identical rules.
func (s *adminService) createOne(ctx context.Context, record dto.BulkStudentRecord) (*model.Student, error) {
	rollNumber := NormalizeRollNumber(record.RollNumber)
	dob := strings.TrimSpace(record.DOB)
	name := strings.TrimSpace(record.Name)

	if rollNumber == "" || dob == "" || name == "" {
		return nil, fmt.Errorf("%w: rollNumber, dob and name are required", apperror.ErrInvalidInput)
	}
	if _, err := time.Parse("2006-01-02", dob); err != nil {
		return nil, fmt.Errorf("%w: dob must be in YYYY-MM-DD format", apperror.ErrInvalidInput)
	}

	if _, err := s.students.FindByRollNumber(ctx, rollNumber); err == nil {
		return nil, fmt.Errorf("%w: roll number %s already exists", apperror.ErrConflict, rollNumber)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	student := &model.Student{
		RollNumber:   rollNumber,
		DOB:          dob,
		Name:         name,
		Department:   strings.TrimSpace(record.Department),
		Batch:        strings.TrimSpace(record.Batch),
		ProfileImage: strings.TrimSpace(record.ProfileImage),
	}

	if err := s.students.Create(ctx, student); err != nil {
		return nil, err
	}

	if err := s.directory.IndexStudent(student); err != nil {
		log.Printf("Failed to index student %s: %v", student.ID, err)
	}

	return student, nil
}

func (s *adminService) BulkCreateStudents(ctx context.Context, input dto.BulkStudentsRequest) (*dto.BulkStudentsResponse, error) {
	results := dto.BulkResults{
		Success: []model.Student{},
		Errors:  []dto.BulkError{},
	}

	for i, record := range input.Students {
		student, err := s.createOne(ctx, record)
		if err != nil {
			results.Errors = append(results.Errors, dto.BulkError{
				Index: i,
				Data:  record,
				Error: err.Error(),
			})
			continue
		}
		results.Success = append(results.Success, *student)
	}

	s.invalidateStats(ctx)

	return &dto.BulkStudentsResponse{
		Message:      fmt.Sprintf("Processed %d students", len(input.Students)),
		SuccessCount: len(results.Success),
		ErrorCount:   len(results.Errors),
		Results:      results,
	}, nil
}

func (s *adminService) UpdateStudent(ctx context.Context, id uuid.UUID, input dto.UpdateStudentRequest) (*model.Student, error) {
	student, err := s.findStudent(ctx, id)
	if err != nil {
		return nil, err
	}
	oldRollNumber := student.RollNumber

	if input.RollNumber != nil {
		rollNumber := NormalizeRollNumber(*input.RollNumber)
		if rollNumber == "" {
			return nil, fmt.Errorf("%w: roll number cannot be empty", apperror.ErrInvalidInput)
		}
		if rollNumber != student.RollNumber {
			if _, err := s.students.FindByRollNumber(ctx, rollNumber); err == nil {
				return nil, fmt.Errorf("%w: roll number %s already exists", apperror.ErrConflict, rollNumber)
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
		}
		student.RollNumber = rollNumber
	}
	if input.DOB != nil {
		student.DOB = strings.TrimSpace(*input.DOB)
	}
	if input.Name != nil {
		student.Name = strings.TrimSpace(*input.Name)
	}
	if input.Department != nil {
		student.Department = strings.TrimSpace(*input.Department)
	}
	if input.Batch != nil {
		student.Batch = strings.TrimSpace(*input.Batch)
	}
	if input.ProfileImage != nil {
		student.ProfileImage = strings.TrimSpace(*input.ProfileImage)
	}

	if err := s.students.Update(ctx, student); err != nil {
		return nil, err
	}

	if student.RollNumber != oldRollNumber {
		if err := s.syncUsername(ctx, student, oldRollNumber); err != nil {
			return nil, err
		}
	}

	if err := s.directory.IndexStudent(student); err != nil {
		log.Printf("Failed to reindex student %s: %v", student.ID, err)
	}

	return student, nil
}

// syncUsername follows a roll number change through to the linked account.
// Default usernames mirror the roll number; leaving the old roll in place
// would collide with whoever is provisioned under it next. A username the
// student customized is left alone.
func (s *adminService) syncUsername(ctx context.Context, student *model.Student, oldRollNumber string) error {
	user, err := s.users.FindByStudentID(ctx, student.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	if user.Username != oldRollNumber {
		return nil
	}

	user.Username = student.RollNumber
	return s.users.UpdateProfile(ctx, user, nil)
}

func (s *adminService) DeleteStudent(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findStudent(ctx, id); err != nil {
		return err
	}

	if err := s.students.DeleteCascade(ctx, id); err != nil {
		return err
	}

	if err := s.directory.RemoveStudent(id); err != nil {
		log.Printf("Failed to remove student %s from index: %v", id, err)
	}

	s.invalidateStats(ctx)
	return nil
}

func (s *adminService) ListUsers(ctx context.Context) ([]dto.ProfileResponse, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	profiles := make([]dto.ProfileResponse, 0, len(users))
	for i := range users {
		followers, following, err := s.users.FollowCounts(ctx, users[i].ID)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *profileResponse(&users[i], followers, following, nil))
	}
	return profiles, nil
}

func (s *adminService) ListPosts(ctx context.Context) ([]dto.PostResponse, error) {
	posts, err := s.posts.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.PostResponse, 0, len(posts))
	for _, p := range posts {
		responses = append(responses, postResponse(p, uuid.Nil))
	}
	return responses, nil
}

// DeletePost is the moderation path: no ownership check.
func (s *adminService) DeletePost(ctx context.Context, postID uuid.UUID) error {
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: post not found", apperror.ErrNotFound)
		}
		return err
	}
	if err := s.posts.Delete(ctx, postID); err != nil {
		return err
	}
	s.invalidateStats(ctx)
	return nil
}

func (s *adminService) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, statsCacheKey).Result()
		if err == nil {
			var stats dto.StatsResponse
			if err := json.Unmarshal([]byte(cached), &stats); err == nil {
				return &stats, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			log.Printf("Failed to read stats cache: %v", err)
		}
	}

	totalStudents, err := s.students.Count(ctx)
	if err != nil {
		return nil, err
	}
	loggedIn, err := s.students.CountLoggedIn(ctx)
	if err != nil {
		return nil, err
	}
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalPosts, err := s.posts.Count(ctx)
	if err != nil {
		return nil, err
	}

	stats := &dto.StatsResponse{
		TotalStudents:       totalStudents,
		TotalUsers:          totalUsers,
		TotalPosts:          totalPosts,
		StudentsLoggedIn:    loggedIn,
		StudentsNotLoggedIn: totalStudents - loggedIn,
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(stats); err == nil {
			if err := s.rdb.Set(ctx, statsCacheKey, payload, statsCacheTTL).Err(); err != nil {
				log.Printf("Failed to write stats cache: %v", err)
			}
		}
	}

	return stats, nil
}

func (s *adminService) invalidateStats(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, statsCacheKey).Err(); err != nil {
		log.Printf("Failed to invalidate stats cache: %v", err)
	}
}

func (s *adminService) findStudent(ctx context.Context, id uuid.UUID) (*model.Student, error) {
	student, err := s.students.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: student not found", apperror.ErrNotFound)
		}
		return nil, err
	}
	return student, nil
}
