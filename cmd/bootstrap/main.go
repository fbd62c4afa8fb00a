package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"storyverse-api/internal/config"
	"storyverse-api/internal/domain/entity"
	"storyverse-api/internal/wire"
)

func main() {
	_ = godotenv.Load()

	fmt.Println("Starting database bootstrap...")

	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()

	// 2. 初始化数据层（仅 PostgreSQL）
	db, cleanup, err := wire.InitializeDatabase(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to initialize data layer: %v", err)
	}
	defer cleanup()

	// 3. 建表
	if err := db.Client.Migrate(ctx); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}
	fmt.Println("Schema is up to date")

	// 4. 可选的演示账号
	email := os.Getenv("BOOTSTRAP_USER_EMAIL")
	password := os.Getenv("BOOTSTRAP_USER_PASSWORD")
	if email == "" || password == "" {
		fmt.Println("BOOTSTRAP_USER_EMAIL not set, skipping demo user")
		return
	}

	existing, err := db.UserRepo.GetByEmail(ctx, email)
	if err != nil {
		log.Fatalf("failed to check user existence: %v", err)
	}
	if existing != nil {
		fmt.Printf("User already exists with ID: %s\n", existing.ID)
		return
	}

	username := os.Getenv("BOOTSTRAP_USER_NAME")
	if username == "" {
		username = "storyteller"
	}
	user := entity.NewUser(username, email, nil)
	if err := user.SetPassword(password); err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	if err := db.UserRepo.Create(ctx, user); err != nil {
		log.Fatalf("failed to create user: %v", err)
	}
	fmt.Printf("User created with ID: %s\n", user.ID)
}
