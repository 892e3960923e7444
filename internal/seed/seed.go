// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"wenje/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedPassword is the password shared by all seeded accounts.
const SeedPassword = "password123"

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())

	log.Printf("Seeding database with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			return fmt.Errorf("failed to clear existing data: %w", err)
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("created %d users", len(users))

	follows, err := createFollows(db, users)
	if err != nil {
		return fmt.Errorf("failed to create follows: %w", err)
	}
	log.Printf("created %d follow edges", follows)

	posts, err := createPosts(db, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("created %d posts", len(posts))

	comments, err := createComments(db, users, posts)
	if err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}
	log.Printf("created %d comments", len(comments))

	likes, err := createLikes(db, users, posts, comments)
	if err != nil {
		return fmt.Errorf("failed to create likes: %w", err)
	}
	log.Printf("created %d likes", likes)

	log.Printf("seeding complete, all users sign in with password %q", SeedPassword)
	return nil
}

// clearData removes all rows in dependency order.
func clearData(db *gorm.DB) error {
	for _, model := range []any{
		&models.Like{}, &models.Comment{}, &models.Post{}, &models.Follow{}, &models.User{},
	} {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

func createUsers(db *gorm.DB, count int) ([]*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, count)
	for i := 0; i < count; i++ {
		name := fmt.Sprintf("%s %s", gofakeit.FirstName(), gofakeit.LastName())
		user := &models.User{
			Name:          name,
			Email:         fmt.Sprintf("%s%d@example.com", strings.ToLower(gofakeit.Username()), i),
			PasswordHash:  string(hash),
			Bio:           gofakeit.HipsterSentence(5),
			Country:       gofakeit.Country(),
			ImageURL:      models.DefaultAvatarURL,
			ImagePublicID: models.DefaultAvatarPublicID,
		}
		if len(user.Bio) > 60 {
			user.Bio = user.Bio[:60]
		}
		if len(user.Country) > 25 {
			user.Country = user.Country[:25]
		}
		users = append(users, user)
	}
	if err := db.Create(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// createFollows gives each user a handful of random follow edges.
func createFollows(db *gorm.DB, users []*models.User) (int, error) {
	if len(users) < 2 {
		return 0, nil
	}
	seen := make(map[[2]uint]bool)
	var edges []*models.Follow
	for _, u := range users {
		for n := rand.Intn(6); n > 0; n-- {
			target := users[rand.Intn(len(users))]
			if target.ID == u.ID {
				continue
			}
			key := [2]uint{u.ID, target.ID}
			if seen[key] {
				continue
			}
			seen[key] = true
			edges = append(edges, &models.Follow{FollowerID: u.ID, FolloweeID: target.ID})
		}
	}
	if len(edges) == 0 {
		return 0, nil
	}
	if err := db.Create(&edges).Error; err != nil {
		return 0, err
	}
	return len(edges), nil
}

func createPosts(db *gorm.DB, users []*models.User, count int) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[rand.Intn(len(users))]
		content := gofakeit.Paragraph(1, 2, 8, " ")
		if len(content) > models.MaxPostContentLen {
			content = content[:models.MaxPostContentLen]
		}
		post := &models.Post{
			AuthorID: author.ID,
			Content:  content,
			// realistic created_at spread for cursor pagination
			CreatedAt: time.Now().Add(-time.Duration(rand.Intn(90*24)) * time.Hour),
		}
		if rand.Intn(3) == 0 {
			seedID := gofakeit.UUID()
			post.ImageURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", seedID)
			post.ImagePublicID = "seed-" + seedID
		}
		posts = append(posts, post)
	}
	if err := db.Create(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func createComments(db *gorm.DB, users []*models.User, posts []*models.Post) ([]*models.Comment, error) {
	var comments []*models.Comment
	for _, post := range posts {
		for n := rand.Intn(4); n > 0; n-- {
			author := users[rand.Intn(len(users))]
			content := gofakeit.Sentence(8)
			if len(content) > models.MaxCommentContentLen {
				content = content[:models.MaxCommentContentLen]
			}
			comments = append(comments, &models.Comment{
				AuthorID:  author.ID,
				PostID:    post.ID,
				Content:   content,
				CreatedAt: post.CreatedAt.Add(time.Duration(rand.Intn(600)) * time.Minute),
			})
		}
	}
	if len(comments) == 0 {
		return nil, nil
	}
	if err := db.Create(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func createLikes(db *gorm.DB, users []*models.User, posts []*models.Post, comments []*models.Comment) (int, error) {
	seen := make(map[[3]any]bool)
	var likes []*models.Like

	add := func(userID uint, kind models.LikeTargetKind, targetID uint) {
		key := [3]any{userID, kind, targetID}
		if seen[key] {
			return
		}
		seen[key] = true
		likes = append(likes, &models.Like{UserID: userID, TargetKind: kind, TargetID: targetID})
	}

	for _, post := range posts {
		for n := rand.Intn(5); n > 0; n-- {
			add(users[rand.Intn(len(users))].ID, models.LikeTargetPost, post.ID)
		}
	}
	for _, comment := range comments {
		for n := rand.Intn(3); n > 0; n-- {
			add(users[rand.Intn(len(users))].ID, models.LikeTargetComment, comment.ID)
		}
	}

	if len(likes) == 0 {
		return 0, nil
	}
	if err := db.Create(&likes).Error; err != nil {
		return 0, err
	}
	return len(likes), nil
}
