package service

import (
	"context"
	"testing"

	"anoa.com/campuscircle/internal/dto"
	"anoa.com/campuscircle/internal/model"
	"anoa.com/campuscircle/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPostService_Create_Validation(t *testing.T) {
	t.Parallel()

	svc := NewPostService(noopPostRepo())
	ctx := context.Background()
	userID := uuid.New()

	tests := []struct {
		name    string
		content string
	}{
		{name: "empty content", content: ""},
		{name: "whitespace only", content: "   \n\t "},
		{name: "markup only", content: "<script>alert(1)</script>"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.Create(ctx, userID, dto.CreatePostRequest{Content: tc.content})
			assertErrorIs(t, err, apperror.ErrInvalidInput)
		})
	}
}

func TestPostService_Create_SanitizesContent(t *testing.T) {
	t.Parallel()

	var created *model.Post
	repo := noopPostRepo()
	repo.createFn = func(_ context.Context, post *model.Post) error {
		created = post
		return nil
	}
	repo.findByIDFn = func(_ context.Context, id uuid.UUID) (*model.Post, error) {
		return created, nil
	}

	svc := NewPostService(repo)
	_, err := svc.Create(context.Background(), uuid.New(), dto.CreatePostRequest{
		Content: "  hello <b>world</b> & friends  ",
	})
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.Equal(t, "hello world & friends", created.Content)
}

func TestPostService_Update_OwnerOnly(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	strangerID := uuid.New()
	postID := uuid.New()

	repo := noopPostRepo()
	repo.findByIDFn = func(_ context.Context, id uuid.UUID) (*model.Post, error) {
		return &model.Post{ID: id, UserID: ownerID, Content: "original"}, nil
	}

	svc := NewPostService(repo)
	content := "edited"

	_, err := svc.Update(context.Background(), strangerID, postID, dto.UpdatePostRequest{Content: &content})
	assertErrorIs(t, err, apperror.ErrForbidden)

	res, err := svc.Update(context.Background(), ownerID, postID, dto.UpdatePostRequest{Content: &content})
	require.NoError(t, err)
	assert.Equal(t, "edited", res.Content)
}

func TestPostService_Update_RejectsEmptiedContent(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	repo := noopPostRepo()
	repo.findByIDFn = func(_ context.Context, id uuid.UUID) (*model.Post, error) {
		return &model.Post{ID: id, UserID: ownerID, Content: "original"}, nil
	}

	svc := NewPostService(repo)
	empty := "   "
	_, err := svc.Update(context.Background(), ownerID, uuid.New(), dto.UpdatePostRequest{Content: &empty})
	assertErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestPostService_Delete_OwnerOnly(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	deleted := false

	repo := noopPostRepo()
	repo.findByIDFn = func(_ context.Context, id uuid.UUID) (*model.Post, error) {
		return &model.Post{ID: id, UserID: ownerID}, nil
	}
	repo.deleteFn = func(_ context.Context, _ uuid.UUID) error {
		deleted = true
		return nil
	}

	svc := NewPostService(repo)

	err := svc.Delete(context.Background(), uuid.New(), uuid.New())
	assertErrorIs(t, err, apperror.ErrForbidden)
	assert.False(t, deleted)

	err = svc.Delete(context.Background(), ownerID, uuid.New())
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestPostService_Get_NotFound(t *testing.T) {
	t.Parallel()

	repo := noopPostRepo()
	repo.findByIDFn = func(_ context.Context, _ uuid.UUID) (*model.Post, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewPostService(repo)
	_, err := svc.Get(context.Background(), uuid.New(), uuid.New())
	assertErrorIs(t, err, apperror.ErrNotFound)
}

func TestPostService_ToggleLike_RoundTrip(t *testing.T) {
	t.Parallel()

	liked := false
	var likes int64

	repo := noopPostRepo()
	repo.toggleLikeFn = func(_ context.Context, _, _ uuid.UUID) (bool, int64, error) {
		liked = !liked
		if liked {
			likes++
		} else {
			likes--
		}
		return liked, likes, nil
	}

	svc := NewPostService(repo)
	actorID := uuid.New()
	postID := uuid.New()

	first, err := svc.ToggleLike(context.Background(), actorID, postID)
	require.NoError(t, err)
	assert.True(t, first.IsLiked)
	assert.Equal(t, int64(1), first.Likes)

	second, err := svc.ToggleLike(context.Background(), actorID, postID)
	require.NoError(t, err)
	assert.False(t, second.IsLiked)
	assert.Equal(t, int64(0), second.Likes)
}

func TestPostService_AddComment_Validation(t *testing.T) {
	t.Parallel()

	svc := NewPostService(noopPostRepo())
	_, err := svc.AddComment(context.Background(), uuid.New(), uuid.New(), dto.CreateCommentRequest{Content: "  "})
	assertErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestPostService_DeleteComment_Authorization(t *testing.T) {
	t.Parallel()

	postOwnerID := uuid.New()
	commentAuthorID := uuid.New()
	strangerID := uuid.New()
	postID := uuid.New()
	commentID := uuid.New()

	newRepo := func() *postRepoStub {
		repo := noopPostRepo()
		repo.findByIDFn = func(_ context.Context, id uuid.UUID) (*model.Post, error) {
			return &model.Post{ID: id, UserID: postOwnerID}, nil
		}
		repo.findCommentFn = func(_ context.Context, pID, cID uuid.UUID) (*model.Comment, error) {
			return &model.Comment{ID: cID, PostID: pID, UserID: commentAuthorID}, nil
		}
		return repo
	}

	t.Run("comment author can delete", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(newRepo())
		assert.NoError(t, svc.DeleteComment(context.Background(), commentAuthorID, postID, commentID))
	})

	t.Run("post owner can delete", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(newRepo())
		assert.NoError(t, svc.DeleteComment(context.Background(), postOwnerID, postID, commentID))
	})

	t.Run("anyone else is forbidden", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(newRepo())
		err := svc.DeleteComment(context.Background(), strangerID, postID, commentID)
		assertErrorIs(t, err, apperror.ErrForbidden)
	})
}

func TestPostService_List_Pagination(t *testing.T) {
	t.Parallel()

	var gotOffset, gotLimit int
	repo := noopPostRepo()
	repo.findPageFn = func(_ context.Context, offset, limit int) ([]model.Post, int64, error) {
		gotOffset = offset
		gotLimit = limit
		return []model.Post{}, 45, nil
	}

	svc := NewPostService(repo)
	res, err := svc.List(context.Background(), uuid.New(), 2, 20)
	require.NoError(t, err)

	assert.Equal(t, 20, gotOffset)
	assert.Equal(t, 20, gotLimit)
	assert.Equal(t, 2, res.CurrentPage)
	assert.Equal(t, 3, res.TotalPages)
	assert.Equal(t, int64(45), res.TotalPosts)
	assert.NotNil(t, res.Posts)
}

func TestPostService_List_DefaultsAndCaps(t *testing.T) {
	t.Parallel()

	var gotLimit int
	repo := noopPostRepo()
	repo.findPageFn = func(_ context.Context, _, limit int) ([]model.Post, int64, error) {
		gotLimit = limit
		return nil, 0, nil
	}

	svc := NewPostService(repo)

	_, err := svc.List(context.Background(), uuid.New(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, defaultFeedLimit, gotLimit)

	_, err = svc.List(context.Background(), uuid.New(), 1, 10000)
	require.NoError(t, err)
	assert.Equal(t, maxFeedLimit, gotLimit)
}

func TestPostResponse_IsLikedReflectsViewer(t *testing.T) {
	t.Parallel()

	viewerID := uuid.New()
	otherID := uuid.New()
	post := model.Post{
		ID:    uuid.New(),
		Likes: []model.PostLike{{UserID: otherID}, {UserID: viewerID}},
	}

	asViewer := postResponse(post, viewerID)
	assert.True(t, asViewer.IsLiked)
	assert.Equal(t, 2, asViewer.Likes)

	asStranger := postResponse(post, uuid.New())
	assert.False(t, asStranger.IsLiked)
	assert.Equal(t, 2, asStranger.Likes)
}
