package cli

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/client/screens"
)

const timeLayout = "2006-01-02 15:04"

func indent(s string) string {
	return "    " + strings.ReplaceAll(s, "\n", "\n    ")
}

// renderList prints the list screen: every note with its title and the first
// two lines of content, or the empty-state text.
func (a *App) renderList(list *screens.NoteListScreen) {
	notes := list.Notes()
	if len(notes) == 0 {
		if list.State().HasData() {
			fmt.Fprintln(a.out, screens.EmptyListText)
		}
		return
	}
	for i, n := range notes {
		fmt.Fprintf(a.out, "%d. %s\n", i+1, n.Title)
		if p := n.Preview(2); p != "" {
			fmt.Fprintln(a.out, indent(p))
		}
	}
}

func (a *App) renderDetail(detail *screens.NoteDetailScreen) {
	n := detail.Note()
	fmt.Fprintf(a.out, "%s\n%s\n\n%s\n", n.Title, n.CreatedAt.Local().Format(timeLayout), n.Content)

	img := 0
	for _, m := range n.Media {
		switch m.Type {
		case models.MediaImage:
			img++
			fmt.Fprintf(a.out, "[image %d] %s (height %d)\n", img, m.URL, detail.DisplayHeight(m.URL))
		default:
			fmt.Fprintf(a.out, "[%s] %s\n", m.Type, m.URL)
		}
	}
}

func (a *App) renderAttachments(files []models.PendingMediaFile) {
	if len(files) == 0 {
		fmt.Fprintln(a.out, "No attachments")
		return
	}
	for i, f := range files {
		fmt.Fprintf(a.out, "%d. [%s] %s\n", i+1, f.Type, f.Filename)
	}
}
