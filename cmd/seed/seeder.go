package main

import (
	"context"
	"math/rand"
	"time"

	"lifeshare/internal/models"
	"lifeshare/internal/repositories"
	"lifeshare/internal/services"
	"lifeshare/pkg/logger"
	"lifeshare/pkg/sessionstore"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Categories seeded stories are spread across.
var Categories = []string{"Travel", "Food", "Family", "Work", "Adventure"}

// Options controls how much demo data is generated.
type Options struct {
	Users    int
	Stories  int
	Password string
	// Seed makes the generated data reproducible when non-zero.
	Seed int64
}

// Summary counts what a run created.
type Summary struct {
	Users    int
	Stories  int
	Likes    int
	Comments int
}

// Seeder fills the database with demo data through the services, so the
// seeded rows obey the same rules as rows created over HTTP.
type Seeder struct {
	opts     Options
	faker    *gofakeit.Faker
	rnd      *rand.Rand
	auth     *services.AuthService
	stories  *services.StoryService
	likes    *services.LikeService
	comments *services.CommentService
}

// NewSeeder creates a Seeder writing to db.
func NewSeeder(db *gorm.DB, jwtSecret string, opts Options) *Seeder {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Seeder{
		opts:     opts,
		faker:    gofakeit.New(seed),
		rnd:      rand.New(rand.NewSource(seed)),
		auth:     services.NewAuthService(repositories.NewGORMUserRepository(db), sessionstore.NewMemoryStore(), nil, jwtSecret, time.Hour),
		stories:  services.NewStoryService(repositories.NewGORMStoryRepository(db), nil),
		likes:    services.NewLikeService(repositories.NewGORMLikeRepository(db), nil),
		comments: services.NewCommentService(repositories.NewGORMCommentRepository(db), nil),
	}
}

// Run creates users, then stories by random users, then likes and
// comments on those stories. Usernames that already exist are skipped.
func (s *Seeder) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{}

	var usernames []string
	for len(usernames) < s.opts.Users {
		username := s.faker.Username()
		err := s.auth.Register(ctx, username, s.opts.Password)
		if errors.Is(err, models.ErrConflict) {
			logger.Log.WithField("username", username).Debug("Skipping taken username")
			continue
		}
		if err != nil {
			return summary, err
		}
		usernames = append(usernames, username)
		summary.Users++
	}
	if len(usernames) == 0 {
		return summary, nil
	}

	for i := 0; i < s.opts.Stories; i++ {
		author := usernames[s.rnd.Intn(len(usernames))]
		category := Categories[s.rnd.Intn(len(Categories))]
		story, err := s.stories.AddStory(ctx, author, category, s.faker.Paragraph(1, 3, 12, " "))
		if err != nil {
			return summary, err
		}
		summary.Stories++

		// Each user toggles at most once per story, so every toggle is a like.
		for _, username := range usernames {
			if s.rnd.Intn(3) != 0 {
				continue
			}
			if _, err := s.likes.ToggleLike(ctx, username, story.ID); err != nil {
				return summary, err
			}
			summary.Likes++
		}

		for j := s.rnd.Intn(3); j > 0; j-- {
			commenter := usernames[s.rnd.Intn(len(usernames))]
			if _, err := s.comments.AddComment(ctx, commenter, story.ID, s.faker.Sentence(8)); err != nil {
				return summary, err
			}
			summary.Comments++
		}
	}
	return summary, nil
}
