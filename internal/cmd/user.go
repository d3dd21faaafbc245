package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/jamesedwarddillard-zz/blogful/internal/db"
	"golang.org/x/crypto/bcrypt"
)

func RunCreateUser() {
	if len(os.Args) < 5 {
		fmt.Println("Usage: create-user <name> <email> <password>")
		os.Exit(1)
	}
	name := os.Args[2]
	email := os.Args[3]
	password := os.Args[4]

	dbConn, err := initDB()
	if err != nil {
		panic(err)
	}
	defer dbConn.Close()
	queries := db.New(dbConn)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}

	_, err = queries.CreateUser(context.Background(), db.CreateUserParams{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		fmt.Printf("failed to create user: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("User %s created successfully\n", email)
}
