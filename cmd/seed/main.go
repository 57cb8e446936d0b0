package main

import (
	"context"
	"errors"
	"fmt"
	"menteazul/internal/app"
	"menteazul/internal/config"
	"menteazul/internal/model"
	"menteazul/internal/platform/logger"
	"menteazul/internal/qchat"
	"menteazul/internal/service"
	"os"
	"time"
)

const (
	demoEmail    = "demo@menteazul.app"
	demoPassword = "menteazul-demo"
)

type sample struct {
	child     qchat.Child
	variantID string
	groupID   string
	// fraction of questions answered with their highest weight
	severity float64
}

var samples = []sample{
	{qchat.Child{Name: "Lucía", AgeMonths: 22}, qchat.VariantAgeAdapted, "toddlers", 0},
	{qchat.Child{Name: "Mateo", AgeMonths: 30}, qchat.VariantParentReport, "toddlers", 0.5},
	{qchat.Child{Name: "Mateo", AgeMonths: 50}, qchat.VariantAgeAdapted, "children", 0.2},
	{qchat.Child{Name: "Valentina", AgeMonths: 96}, qchat.VariantAgeAdapted, "schoolage", 0.9},
}

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to start", "error", err)
	}
	defer a.Close(context.Background())

	user, err := demoUser(ctx, a.AuthService)
	if err != nil {
		log.Fatal("failed to create demo user", "error", err)
	}

	for _, s := range samples {
		_, g, err := a.Dataset.AgeGroup(s.variantID, s.groupID)
		if err != nil {
			log.Fatal("unknown sample age group", "variant", s.variantID, "age_group", s.groupID, "error", err)
		}
		result, err := a.EvaluationSvc.Submit(ctx, user.ID, model.EvaluationRequest{
			ScoreRequest: qchat.ScoreRequest{VariantID: s.variantID, AgeGroupID: s.groupID, Answers: answersFor(g, s.severity)},
			Child:        s.child,
		})
		if err != nil {
			log.Fatal("failed to store sample", "error", err)
		}
		fmt.Printf("%-10s %-20s %-10s %3d/%-3d %s\n", s.child.Name, s.variantID, s.groupID, result.TotalScore, result.MaxScore, result.RiskLevel)
	}

	fmt.Printf("\nSeeded %d results for %s (password %q)\n", len(samples), demoEmail, demoPassword)
}

func demoUser(ctx context.Context, auth *service.AuthService) (*model.User, error) {
	resp, err := auth.Register(ctx, model.RegisterRequest{
		Email:       demoEmail,
		Password:    demoPassword,
		DisplayName: "Familia Demo",
		Role:        model.RoleParent,
	})
	if errors.Is(err, service.ErrEmailTaken) {
		resp, err = auth.Login(ctx, demoEmail, demoPassword)
	}
	if err != nil {
		return nil, err
	}
	return resp.User, nil
}

// answersFor gives the first severity share of questions their highest weight
// and the rest their lowest
func answersFor(g *qchat.AgeGroup, severity float64) qchat.AnswerSet {
	answers := make(qchat.AnswerSet, len(g.Questions))
	cut := int(float64(len(g.Questions)) * severity)
	for i, q := range g.Questions {
		if i < cut {
			answers[q.ID] = q.MaxWeight()
		} else {
			answers[q.ID] = q.MinWeight()
		}
	}
	return answers
}
