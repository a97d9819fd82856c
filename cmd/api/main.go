package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/car-parts-api/internal/config"
	"github.com/car-parts-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/car-parts-api/internal/infrastructure/jwt"
	s3infra "github.com/car-parts-api/internal/infrastructure/s3"
	"github.com/car-parts-api/internal/infrastructure/smtp"
	"github.com/car-parts-api/internal/infrastructure/sns"
	stripeinfra "github.com/car-parts-api/internal/infrastructure/stripe"
	transporthttp "github.com/car-parts-api/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	// Bearer tokens are the access-control backbone; refuse to start without
	// a signing secret.
	jwtProvider, err := jwtinfra.NewProvider(cfg)
	if err != nil {
		log.Fatalf("JWT provider: %v", err)
	}

	// Stripe gateway (optional — payment intents refuse cleanly without it).
	var gateway stripeinfra.Gateway
	if g, err := stripeinfra.NewGateway(cfg.StripeSecretKey); err == nil {
		gateway = g
	} else {
		log.Printf("WARN: Stripe gateway not available: %v", err)
	}

	// S3 part-image store.
	s3Client := s3infra.NewClient(cfg)
	imageStore := s3infra.NewStore(s3Client, cfg.S3BucketName)

	// SMTP mailer for payment receipts.
	mailer := smtp.NewMailer(cfg)

	// SNS SMS sender for shipment notifications (optional — graceful fallback).
	var smsSender sns.SMSSender
	if sender, err := sns.NewSender(cfg); err == nil {
		smsSender = sender
	} else {
		log.Printf("WARN: SNS sender not available: %v", err)
	}

	deps := &transporthttp.Deps{
		UserRepo:       dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users),
		OrderRepo:      dynamo.NewOrderRepo(dynamoClient, cfg.DynamoTables.Orders, cfg.DynamoTables.Payments),
		PartRepo:       dynamo.NewPartRepo(dynamoClient, cfg.DynamoTables.Parts),
		ReviewRepo:     dynamo.NewReviewRepo(dynamoClient, cfg.DynamoTables.Reviews),
		ImageStore:     imageStore,
		SMSSender:      smsSender,
		Mailer:         mailer,
		JWTProvider:    jwtProvider,
		PaymentGateway: gateway,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
