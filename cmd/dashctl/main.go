package main

import "github.com/pageza/symptom-diary/backend/internal/cmd"

func main() {
	cmd.Execute()
}
