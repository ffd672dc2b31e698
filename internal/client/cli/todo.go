package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"todokeeper/internal/client/models"
)

// List fetches the todos and replaces the local list wholesale.
func (a *App) List(ctx context.Context) error {
	todos, err := a.api.ListTodos(ctx)
	if err != nil {
		printlnFn("Error: " + err.Error())
		return err
	}
	a.todos = todos

	if len(a.todos) == 0 {
		printlnFn("No todos yet.")
		return nil
	}
	for i, todo := range a.todos {
		mark := " "
		if todo.Completed {
			mark = "x"
		}
		printlnFn(fmt.Sprintf("%3d [%s] %s", i+1, mark, todo.Description))
	}
	return nil
}

// Add creates a todo and splices the server-confirmed entity into the list.
func (a *App) Add(ctx context.Context) error {
	description, err := getSimpleText(a.reader, "Enter description", os.Stdout)
	if err != nil {
		return err
	}

	todo, err := a.api.CreateTodo(ctx, description)
	if err != nil {
		printlnFn("Error: " + err.Error())
		return err
	}
	a.todos = append(a.todos, *todo)
	printlnFn("Added.")
	return nil
}

// Toggle flips a todo's completed flag. The flip happens server-side; local
// state takes the returned entity. A failure here is logged only — the row
// simply stays as it was.
func (a *App) Toggle(ctx context.Context, arg string) error {
	id, ok := a.resolveID(arg)
	if !ok {
		printlnFn("Usage: toggle <number|id>")
		return nil
	}

	todo, err := a.api.ToggleTodo(ctx, id)
	if err != nil {
		a.log.Error(ctx, "toggle failed", "id", id, "error", err.Error())
		return err
	}
	a.replaceTodo(*todo)
	return nil
}

// Edit updates a todo's description with the server-confirmed entity.
func (a *App) Edit(ctx context.Context, arg string) error {
	id, ok := a.resolveID(arg)
	if !ok {
		printlnFn("Usage: edit <number|id>")
		return nil
	}

	description, err := getSimpleText(a.reader, "Enter new description", os.Stdout)
	if err != nil {
		return err
	}

	todo, err := a.api.UpdateTodo(ctx, id, models.TodoUpdate{Description: &description})
	if err != nil {
		printlnFn("Error: " + err.Error())
		return err
	}
	a.replaceTodo(*todo)
	printlnFn("Updated.")
	return nil
}

// Remove deletes a todo and drops the row after the confirming round trip.
// Failures are logged only.
func (a *App) Remove(ctx context.Context, arg string) error {
	id, ok := a.resolveID(arg)
	if !ok {
		printlnFn("Usage: rm <number|id>")
		return nil
	}

	if err := a.api.DeleteTodo(ctx, id); err != nil {
		a.log.Error(ctx, "delete failed", "id", id, "error", err.Error())
		return err
	}
	a.removeTodo(id)
	return nil
}

// Show prints one todo fetched from the backend.
func (a *App) Show(ctx context.Context, arg string) error {
	id, ok := a.resolveID(arg)
	if !ok {
		printlnFn("Usage: show <number|id>")
		return nil
	}

	todo, err := a.api.GetTodo(ctx, id)
	if err != nil {
		printlnFn("Error: " + err.Error())
		return err
	}

	state := "open"
	if todo.Completed {
		state = "done"
	}
	printlnFn("id:          " + todo.ID)
	printlnFn("description: " + todo.Description)
	printlnFn("state:       " + state)
	printlnFn("created:     " + todo.CreatedAt.Local().Format("2006-01-02 15:04"))
	printlnFn("updated:     " + todo.UpdatedAt.Local().Format("2006-01-02 15:04"))
	return nil
}

// resolveID maps a command argument to a todo id: a 1-based list number from
// the last List output, or a raw id.
func (a *App) resolveID(arg string) (string, bool) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", false
	}
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(a.todos) {
			return "", false
		}
		return a.todos[n-1].ID, true
	}
	return arg, true
}

func (a *App) replaceTodo(todo models.Todo) {
	for i := range a.todos {
		if a.todos[i].ID == todo.ID {
			a.todos[i] = todo
			return
		}
	}
	a.todos = append(a.todos, todo)
}

func (a *App) removeTodo(id string) {
	for i := range a.todos {
		if a.todos[i].ID == id {
			a.todos = append(a.todos[:i], a.todos[i+1:]...)
			return
		}
	}
}
