package cli

import (
	"fmt"

	"github.com/google/uuid"

	"studyflow/internal/models"
)

type CourseAddCmd struct {
	Name  string `arg:"" help:"Course name."`
	Color string `short:"c" help:"Display color (hex or terminal color)." default:"4"`
}

func (c *CourseAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	course := models.Course{
		ID:    uuid.New().String(),
		Name:  c.Name,
		Color: c.Color,
	}
	if err := ctx.Store.AddCourse(course); err != nil {
		return err
	}

	fmt.Printf("Added course: %s (ID: %s)\n", c.Name, course.ID)
	return nil
}

type CourseListCmd struct{}

func (c *CourseListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	courses, err := ctx.Store.GetAllCourses()
	if err != nil {
		return err
	}

	if len(courses) == 0 {
		fmt.Println("No courses. Add one with 'studyflow course add'.")
		return nil
	}
	for _, course := range courses {
		fmt.Printf("%-36s  %s\n", course.ID, course.Name)
	}
	return nil
}
