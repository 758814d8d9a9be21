package seed

import (
	"fmt"
	"math/rand"
	"strings"

	"musclejourney/internal/models"

	"github.com/brianvoe/gofakeit/v6"
)

var postTemplates = []string{
	"Hit a new %s PR today: %d kg. Months of work finally paying off.",
	"Morning %s session done. %d minutes, felt strong the whole way.",
	"Anyone else struggle with %s form on heavy sets? Tips welcome.",
	"Week %d of the program. %s is finally starting to feel natural.",
	"Rest day. Meal prepped and stretched. Back at %s tomorrow.",
}

var exercises = []string{
	"deadlift", "squat", "bench press", "overhead press", "barbell row",
	"pull-up", "running", "cycling", "swimming", "rowing",
}

var commentTemplates = []string{
	"Huge! Congrats.",
	"Strong work, keep it up.",
	"What program are you running?",
	"Been there. It gets easier around week three.",
	"Form looks solid from here.",
	"Inspiring stuff, needed this today.",
}

func fakeUser(i int) *models.User {
	return &models.User{
		// Index suffix keeps usernames unique across a run.
		Username: fmt.Sprintf("%s%d", strings.ToLower(gofakeit.Username()), i),
		Avatar:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		Bio:      gofakeit.Sentence(8),
	}
}

func fakePost(rng *rand.Rand, userID uint) *models.Post {
	template := postTemplates[rng.Intn(len(postTemplates))]
	exercise := exercises[rng.Intn(len(exercises))]

	var content string
	switch strings.Count(template, "%") {
	case 1:
		content = fmt.Sprintf(template, exercise)
	default:
		if strings.Index(template, "%s") < strings.Index(template, "%d") {
			content = fmt.Sprintf(template, exercise, 20+rng.Intn(160))
		} else {
			content = fmt.Sprintf(template, 1+rng.Intn(12), exercise)
		}
	}

	post := &models.Post{
		UserID:  userID,
		Content: content,
	}
	if rng.Intn(4) == 0 {
		post.ImageURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID())
	}
	return post
}

func fakeCommentContent(rng *rand.Rand) string {
	return commentTemplates[rng.Intn(len(commentTemplates))]
}
