package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/favtui/fav/internal/api"
	"github.com/favtui/fav/internal/config"
	"github.com/favtui/fav/internal/exporter"
	"github.com/favtui/fav/internal/importer"
	"github.com/favtui/fav/internal/model"
	"github.com/favtui/fav/internal/picker"
	"github.com/favtui/fav/internal/tui"
)

func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "help", "--help", "-h":
			printHelp()
			return
		case "search":
			if len(os.Args) < 3 {
				fmt.Fprintf(os.Stderr, "Usage: fav search <query>\n")
				os.Exit(1)
			}
			runSearch(strings.Join(os.Args[2:], " "))
			return
		case "import":
			if len(os.Args) < 3 {
				fmt.Fprintf(os.Stderr, "Usage: fav import <file.json|file.html>\n")
				os.Exit(1)
			}
			runImport(os.Args[2])
			return
		case "export":
			var outputPath string
			if len(os.Args) >= 3 {
				outputPath = os.Args[2]
			}
			runExport(outputPath)
			return
		case "tasks":
			runTasks()
			return
		default:
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
			printHelp()
			os.Exit(1)
		}
	}

	// No args - run full TUI
	runTUI()
}

func printHelp() {
	help := `fav - terminal client for the favorites server

Usage:
  fav                   Open interactive TUI
  fav search <query>    Semantic search → select → open
  fav import <file>     Import favorites from JSON export or bookmark HTML
  fav export [path]     Export favorites (.json, or .db/.sqlite snapshot)
  fav tasks             Print background task status
  fav help              Show this help

TUI Keybindings:
  Navigation:
    j/k         Move down/up
    h/l         Switch between folder and favorites pane
    gg/G        Jump to top/bottom
    1-4         Switch view (browser/tags/search/tasks)

  Actions:
    Enter       Select folder / open favorite
    Y           Copy URL to clipboard
    /           Fuzzy tag filter (server-side)
    f           Filter loaded favorites
    R           Refresh

  Editing:
    a           Add folder
    r           Rename folder
    e           Edit favorite
    t           Edit tags
    d           Delete

  Other:
    S           Settings (restart import, reindex, reset)
    ?           Show help overlay
    q           Quit

Configuration:
  ~/.config/fav/config.json (FAV_API_URL overrides the server URL)
`
	fmt.Print(help)
}

// loadClient reads the configuration and builds the API client.
func loadClient() (*api.Client, *config.Config) {
	path, err := config.DefaultPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting config path: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	return api.NewClient(cfg.APIBaseURL), cfg
}

// runTUI runs the full interactive TUI.
func runTUI() {
	client, cfg := loadClient()

	if os.Getenv("FAV_DEBUG") != "" {
		f, err := tea.LogToFile("fav-debug.log", "fav")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening debug log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	}

	app := tui.NewApp(tui.AppParams{Client: client, PageSize: cfg.PageSize})
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}

// runSearch performs a vector search and opens the selected favorite.
func runSearch(query string) {
	client, _ := loadClient()

	results, err := client.VectorSearch(context.Background(), query, api.DefaultSearchLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error searching: %v\n", err)
		os.Exit(1)
	}

	if len(results) == 0 {
		fmt.Printf("No favorites found for '%s'\n", query)
		return
	}

	var selected *model.Favorite

	if len(results) == 1 {
		// Single result - open it directly
		selected = &results[0]
		fmt.Printf("Opening: %s\n", selected.DisplayTitle())
	} else {
		p := picker.New(results, query)
		program := tea.NewProgram(p)
		finalModel, err := program.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running picker: %v\n", err)
			os.Exit(1)
		}

		finalPicker := finalModel.(picker.Picker)
		if finalPicker.Cancelled() {
			return
		}
		selected = finalPicker.SelectedFavorite()
	}

	if selected == nil {
		return
	}
	if err := tui.OpenURL(selected.URL); err != nil {
		fmt.Fprintf(os.Stderr, "Error opening browser: %v\n", err)
		os.Exit(1)
	}
}

// runImport handles the import subcommand.
func runImport(filePath string) {
	client, _ := loadClient()

	file, err := os.Open(filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	favorites, err := importer.ParseFile(filePath, file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing file: %v\n", err)
		os.Exit(1)
	}
	if len(favorites) == 0 {
		fmt.Println("Nothing to import")
		return
	}

	if err := client.ImportFavorites(context.Background(), favorites); err != nil {
		fmt.Fprintf(os.Stderr, "Error importing: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Sent %d favorites to the server for import\n", len(favorites))
}

// runExport handles the export subcommand. The extension of the output path
// picks the format: .db or .sqlite writes a database snapshot, everything
// else writes the JSON import format.
func runExport(outputPath string) {
	client, cfg := loadClient()

	if outputPath == "" {
		var err error
		outputPath, err = exporter.DefaultExportPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting default export path: %v\n", err)
			os.Exit(1)
		}
	}

	favorites, err := fetchAllFavorites(client, cfg.PageSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching favorites: %v\n", err)
		os.Exit(1)
	}

	switch strings.ToLower(filepath.Ext(outputPath)) {
	case ".db", ".sqlite":
		folders, err := client.Folders(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error fetching folders: %v\n", err)
			os.Exit(1)
		}
		if err := exporter.WriteSQLite(outputPath, folders, favorites); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing snapshot: %v\n", err)
			os.Exit(1)
		}
	default:
		file, err := os.Create(outputPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating file: %v\n", err)
			os.Exit(1)
		}
		defer file.Close()

		if err := exporter.WriteJSON(file, favorites); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing export: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Exported %d favorites to %s\n", len(favorites), outputPath)
}

// fetchAllFavorites walks the unfiltered favorites pages until a short page
// marks the end of the data.
func fetchAllFavorites(client *api.Client, pageSize int) ([]model.Favorite, error) {
	var all []model.Favorite
	for {
		page, err := client.Favorites(context.Background(), len(all), pageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < pageSize {
			return all, nil
		}
	}
}

// runTasks prints the background task list once.
func runTasks() {
	client, _ := loadClient()

	tasks, err := client.Tasks(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching tasks: %v\n", err)
		os.Exit(1)
	}

	if len(tasks) == 0 {
		fmt.Println("No background tasks")
		return
	}

	for _, task := range tasks {
		fmt.Printf("%-30s %3d%%  %s\n", task.Name, task.Progress, task.Status)
	}
}
