package service

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"anoa.com/campuscircle/internal/dto"
	"anoa.com/campuscircle/internal/model"
	"anoa.com/campuscircle/internal/repository"
	"github.com/google/uuid"
	"github.com/meilisearch/meilisearch-go"
)

const (
	directoryIndex       = "students"
	directorySearchLimit = 20
)

// DirectoryService backs the student directory search. Results only include
// students who already have an account; roster entries that never logged in
// stay invisible.
type DirectoryService interface {
	Search(ctx context.Context, query string) ([]dto.DirectoryEntry, error)
	IndexStudent(student *model.Student) error
	RemoveStudent(id uuid.UUID) error
}

type directoryService struct {
	client   meilisearch.ServiceManager
	students repository.StudentRepository
	users    repository.UserRepository
}

// NewDirectoryService accepts a nil meilisearch client; search then falls
// back to a database scan and indexing becomes a no-op.
func NewDirectoryService(client meilisearch.ServiceManager, students repository.StudentRepository, users repository.UserRepository) DirectoryService {
	s := &directoryService{
		client:   client,
		students: students,
		users:    users,
	}
	s.initIndex()
	return s
}

func (s *directoryService) initIndex() {
	if s.client == nil {
		return
	}

	// Searches match on name and roll number only; department and batch are
	// carried for display
	searchable := []string{"name", "rollNumber"}
	if _, err := s.client.Index(directoryIndex).UpdateSearchableAttributes(&searchable); err != nil {
		log.Printf("Failed to update students searchable attributes: %v", err)
	}

	// Roster rows that predate the index (or were written while search was
	// disabled) would otherwise stay invisible until their next save
	if err := s.backfill(func(docs []meiliStudentDoc) error {
		primaryKey := "id"
		_, err := s.client.Index(directoryIndex).AddDocuments(docs, &primaryKey)
		return err
	}); err != nil {
		log.Printf("Failed to backfill students index: %v", err)
	}

	log.Println("Meilisearch students index initialized")
}

const backfillPageSize = 500

// backfill pages through the roster and hands each batch of documents to add.
func (s *directoryService) backfill(add func([]meiliStudentDoc) error) error {
	offset := 0
	for {
		students, _, err := s.students.FindPage(context.Background(), offset, backfillPageSize)
		if err != nil {
			return err
		}
		if len(students) == 0 {
			return nil
		}

		docs := make([]meiliStudentDoc, 0, len(students))
		for i := range students {
			docs = append(docs, studentDoc(&students[i]))
		}
		if err := add(docs); err != nil {
			return err
		}

		if len(students) < backfillPageSize {
			return nil
		}
		offset += backfillPageSize
	}
}

type meiliStudentDoc struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	RollNumber string `json:"rollNumber"`
	Department string `json:"department"`
	Batch      string `json:"batch"`
}

func studentDoc(student *model.Student) meiliStudentDoc {
	return meiliStudentDoc{
		ID:         student.ID.String(),
		Name:       student.Name,
		RollNumber: student.RollNumber,
		Department: student.Department,
		Batch:      student.Batch,
	}
}

func (s *directoryService) Search(ctx context.Context, query string) ([]dto.DirectoryEntry, error) {
	entries := []dto.DirectoryEntry{}

	query = strings.TrimSpace(query)
	if query == "" {
		return entries, nil
	}

	studentIDs, err := s.searchStudentIDs(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(studentIDs) == 0 {
		return entries, nil
	}

	users, err := s.users.FindByStudentIDs(ctx, studentIDs)
	if err != nil {
		return nil, err
	}

	byStudent := make(map[uuid.UUID]model.User, len(users))
	for _, u := range users {
		byStudent[u.StudentID] = u
	}

	// Keep the search engine's ranking; drop roster entries without an account
	for _, id := range studentIDs {
		u, ok := byStudent[id]
		if !ok {
			log.Printf("Directory search skipped student %s: no account yet", id)
			continue
		}
		entries = append(entries, dto.DirectoryEntry{
			ID:       u.ID,
			Username: u.Username,
			Bio:      u.Bio,
			Student:  studentSummary(u.Student),
		})
	}

	return entries, nil
}

func (s *directoryService) searchStudentIDs(ctx context.Context, query string) ([]uuid.UUID, error) {
	if s.client == nil {
		students, err := s.students.Search(ctx, query, directorySearchLimit)
		if err != nil {
			return nil, err
		}
		ids := make([]uuid.UUID, 0, len(students))
		for _, st := range students {
			ids = append(ids, st.ID)
		}
		return ids, nil
	}

	resp, err := s.client.Index(directoryIndex).Search(query, &meilisearch.SearchRequest{
		Limit: directorySearchLimit,
	})
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(resp.Hits)
	if err != nil {
		return nil, err
	}
	var docs []meiliStudentDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(docs))
	for _, doc := range docs {
		id, err := uuid.Parse(doc.ID)
		if err != nil {
			log.Printf("Skipping malformed directory document id %q: %v", doc.ID, err)
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *directoryService) IndexStudent(student *model.Student) error {
	if s.client == nil {
		return nil
	}

	primaryKey := "id"
	task, err := s.client.Index(directoryIndex).AddDocuments([]meiliStudentDoc{studentDoc(student)}, &primaryKey)
	if err != nil {
		return err
	}
	log.Printf("Indexed student %s, task id: %d", student.ID, task.TaskUID)
	return nil
}

func (s *directoryService) RemoveStudent(id uuid.UUID) error {
	if s.client == nil {
		return nil
	}

	_, err := s.client.Index(directoryIndex).DeleteDocument(id.String())
	return err
}
