package main

import (
	"ExamTimetabler/internal/bootstrap"
	pkg "ExamTimetabler/pkg/routes"

	"go.uber.org/fx"
)

func main() {
	bootstrap.Loadenv()
	app := fx.New(
		pkg.EchoModules,
	)

	app.Run()
}
