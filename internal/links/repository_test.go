package links_test

import (
	"context"
	"startpage/internal/kv"
	"startpage/internal/links"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) (*links.Repository, kv.Store) {
	t.Helper()
	store := kv.NewMemoryStore()
	repo := links.NewRepository(store, zerolog.Nop())
	repo.Load(context.Background())
	return repo, store
}

func mustAdd(t *testing.T, repo *links.Repository, title, url, category string) links.Link {
	t.Helper()
	l, err := repo.AddLink(context.Background(), title, url, category)
	require.NoError(t, err)
	return l
}

func titles(ls []links.Link) []string {
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = l.Title
	}
	return out
}

func never(string) bool { return false }

func TestRepository_AddLink(t *testing.T) {
	ctx := context.Background()

	t.Run("new category is registered exactly once", func(t *testing.T) {
		repo, _ := newTestRepository(t)

		mustAdd(t, repo, "Docs", "https://go.dev/doc", "Go")
		assert.Equal(t, []string{"Go"}, repo.Categories())
		assert.Equal(t, 1, repo.Count())

		mustAdd(t, repo, "Blog", "https://go.dev/blog", "Go")
		mustAdd(t, repo, "Play", "https://go.dev/play", "Go")

		assert.Equal(t, []string{"Go"}, repo.Categories())
		assert.Equal(t, 3, repo.Count())
	})

	t.Run("trims fields", func(t *testing.T) {
		repo, _ := newTestRepository(t)

		l := mustAdd(t, repo, "  Docs ", " https://go.dev ", " Go\t")

		assert.Equal(t, links.Link{Title: "Docs", URL: "https://go.dev", Category: "Go"}, l)
	})

	t.Run("rejects empty fields without mutating", func(t *testing.T) {
		repo, _ := newTestRepository(t)

		for _, tc := range []struct{ title, url, category, field string }{
			{"", "https://x", "A", "title"},
			{"X", "   ", "A", "url"},
			{"X", "https://x", "", "category"},
		} {
			_, err := repo.AddLink(ctx, tc.title, tc.url, tc.category)

			var verr *links.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
			assert.ErrorIs(t, err, links.ErrEmptyField)
		}
		assert.Equal(t, 0, repo.Count())
		assert.Empty(t, repo.Categories())
	})

	t.Run("duplicates are allowed", func(t *testing.T) {
		repo, _ := newTestRepository(t)

		mustAdd(t, repo, "Mail", "https://mail", "Daily")
		mustAdd(t, repo, "Mail", "https://mail", "Daily")

		assert.Equal(t, 2, repo.Count())
	})
}

func TestRepository_EditLink(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces in place", func(t *testing.T) {
		repo, _ := newTestRepository(t)
		mustAdd(t, repo, "a", "https://a", "X")
		b := mustAdd(t, repo, "b", "https://b", "X")
		mustAdd(t, repo, "c", "https://c", "X")

		_, err := repo.EditLink(ctx, b, "B", "https://bee", "X")

		require.NoError(t, err)
		assert.Equal(t, []string{"a", "B", "c"}, titles(repo.Links()))
		assert.Equal(t, "https://bee", repo.Links()[1].URL)
	})

	t.Run("only the first duplicate changes", func(t *testing.T) {
		repo, _ := newTestRepository(t)
		dup := mustAdd(t, repo, "Mail", "https://mail", "Daily")
		mustAdd(t, repo, "Mail", "https://mail", "Daily")

		_, err := repo.EditLink(ctx, dup, "Inbox", "https://mail", "Daily")

		require.NoError(t, err)
		assert.Equal(t, []string{"Inbox", "Mail"}, titles(repo.Links()))
	})

	t.Run("missing link is not found", func(t *testing.T) {
		repo, _ := newTestRepository(t)
		mustAdd(t, repo, "a", "https://a", "X")

		_, err := repo.EditLink(ctx, links.Link{Title: "zzz", URL: "u", Category: "X"}, "n", "u", "X")

		assert.ErrorIs(t, err, links.ErrNotFound)
		assert.Equal(t, []string{"a"}, titles(repo.Links()))
	})

	t.Run("validation runs first", func(t *testing.T) {
		repo, _ := newTestRepository(t)
		a := mustAdd(t, repo, "a", "https://a", "X")

		_, err := repo.EditLink(ctx, a, "a", "", "X")

		assert.ErrorIs(t, err, links.ErrEmptyField)
		assert.Equal(t, a, repo.Links()[0])
	})

	t.Run("new category on edit is registered", func(t *testing.T) {
		repo, _ := newTestRepository(t)
		a := mustAdd(t, repo, "a", "https://a", "X")

		_, err := repo.EditLink(ctx, a, "a", "https://a", "Y")

		require.NoError(t, err)
		assert.Equal(t, []string{"X", "Y"}, repo.Categories())
	})
}

func TestRepository_DeleteLink(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the first match once confirmed", func(t *testing.T) {
		repo, _ := newTestRepository(t)
		dup := mustAdd(t, repo, "Mail", "https://mail", "Daily")
		mustAdd(t, repo, "News", "https://news", "Daily")
		mustAdd(t, repo, "Mail", "https://mail", "Daily")

		var prompt string
		err := repo.DeleteLink(ctx, dup, func(p string) bool {
			prompt = p
			return true
		})

		require.NoError(t, err)
		assert.Equal(t, `Are you sure you want to delete "Mail"?`, prompt)
		assert.Equal(t, []string{"News", "Mail"}, titles(repo.Links()))
	})

	t.Run("declined gate keeps the link", func(t *testing.T) {
		repo, _ := newTestRepository(t)
		a := mustAdd(t, repo, "a", "https://a", "X")

		err := repo.DeleteLink(ctx, a, never)

		assert.ErrorIs(t, err, links.ErrDeclined)
		assert.Equal(t, 1, repo.Count())
	})

	t.Run("absent link is a no-op", func(t *testing.T) {
		repo, _ := newTestRepository(t)
		mustAdd(t, repo, "a", "https://a", "X")

		err := repo.DeleteLink(ctx, links.Link{Title: "b", URL: "https://b", Category: "X"}, links.AlwaysConfirm)

		assert.ErrorIs(t, err, links.ErrNotFound)
		assert.Equal(t, 1, repo.Count())
	})
}

func TestRepository_RenameCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("cascades to links and keeps positions", func(t *testing.T) {
		repo, _ := newTestRepository(t)
		mustAdd(t, repo, "t1", "https://1", "A")
		mustAdd(t, repo, "t2", "https://2", "B")
		mustAdd(t, repo, "t3", "https://3", "A")

		require.NoError(t, repo.RenameCategory(ctx, "A", "X"))

		assert.Equal(t, []links.Link{
			{Title: "t1", URL: "https://1", Category: "X"},
			{Title: "t2", URL: "https://2", Category: "B"},
			{Title: "t3", URL: "https://3", Category: "X"},
		}, repo.Links())
		assert.Equal(t, []string{"X", "B"}, repo.Categories())
	})

	t.Run("rejects an existing name and leaves state alone", func(t *testing.T) {
		repo, _ := newTestRepository(t)
		mustAdd(t, repo, "t1", "https://1", "A")
		mustAdd(t, repo, "t2", "https://2", "B")
		before, beforeCats := repo.Links(), repo.Categories()

		err := repo.RenameCategory(ctx, "A", "B")

		assert.ErrorIs(t, err, links.ErrCategoryExists)
		assert.Equal(t, before, repo.Links())
		assert.Equal(t, beforeCats, repo.Categories())
	})

	t.Run("rejects empty and unchanged names", func(t *testing.T) {
		repo, _ := newTestRepository(t)
		mustAdd(t, repo, "t1", "https://1", "A")

		assert.ErrorIs(t, repo.RenameCategory(ctx, "A", "   "), links.ErrEmptyField)
		assert.ErrorIs(t, repo.RenameCategory(ctx, "A", " A "), links.ErrCategoryUnchanged)
	})

	t.Run("unknown category is not found", func(t *testing.T) {
		repo, _ := newTestRepository(t)

		assert.ErrorIs(t, repo.RenameCategory(ctx, "ghost", "B"), links.ErrNotFound)
	})
}

func TestRepository_DeleteCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("removes links and registry entry", func(t *testing.T) {
		repo, _ := newTestRepository(t)
		mustAdd(t, repo, "t1", "https://1", "A")
		mustAdd(t, repo, "t2", "https://2", "B")
		mustAdd(t, repo, "t3", "https://3", "A")

		var prompt string
		err := repo.DeleteCategory(ctx, "A", func(p string) bool {
			prompt = p
			return true
		})

		require.NoError(t, err)
		assert.Equal(t, `Are you sure you want to delete the "A" category and all 2 links in it?`, prompt)
		assert.Equal(t, []string{"t2"}, titles(repo.Links()))
		assert.Equal(t, []string{"B"}, repo.Categories())
	})

	t.Run("empty category only leaves the registry", func(t *testing.T) {
		repo, _ := newTestRepository(t)
		mustAdd(t, repo, "t1", "https://1", "A")
		a := mustAdd(t, repo, "t2", "https://2", "B")
		_, err := repo.MoveLink(ctx, a, "A", 0)
		require.NoError(t, err)
		before := repo.Links()

		require.NoError(t, repo.DeleteCategory(ctx, "B", links.AlwaysConfirm))

		assert.Equal(t, before, repo.Links())
		assert.Equal(t, []string{"A"}, repo.Categories())
	})

	t.Run("declined gate keeps everything", func(t *testing.T) {
		repo, _ := newTestRepository(t)
		mustAdd(t, repo, "t1", "https://1", "A")

		assert.ErrorIs(t, repo.DeleteCategory(ctx, "A", never), links.ErrDeclined)
		assert.Equal(t, 1, repo.Count())
		assert.Equal(t, []string{"A"}, repo.Categories())
	})

	t.Run("unknown category is not found", func(t *testing.T) {
		repo, _ := newTestRepository(t)

		assert.ErrorIs(t, repo.DeleteCategory(ctx, "ghost", links.AlwaysConfirm), links.ErrNotFound)
	})
}

func TestRepository_MoveLink(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*links.Repository, []links.Link) {
		t.Helper()
		repo, _ := newTestRepository(t)
		ls := []links.Link{
			mustAdd(t, repo, "a1", "https://a1", "A"),
			mustAdd(t, repo, "a2", "https://a2", "A"),
			mustAdd(t, repo, "a3", "https://a3", "A"),
			mustAdd(t, repo, "b1", "https://b1", "B"),
		}
		return repo, ls
	}

	t.Run("same category to index 0 puts it first", func(t *testing.T) {
		repo, ls := setup(t)

		moved, err := repo.MoveLink(ctx, ls[2], "A", 0)

		require.NoError(t, err)
		assert.Equal(t, "A", moved.Category)
		assert.Equal(t, []string{"a3", "a1", "a2", "b1"}, titles(repo.Links()))
	})

	t.Run("same category to index count appends last", func(t *testing.T) {
		repo, ls := setup(t)

		_, err := repo.MoveLink(ctx, ls[0], "A", 3)

		require.NoError(t, err)
		assert.Equal(t, []string{"a2", "a3", "a1", "b1"}, titles(repo.Links()))
	})

	t.Run("same category never changes the category field", func(t *testing.T) {
		repo, ls := setup(t)

		_, err := repo.MoveLink(ctx, ls[1], "A", 1)

		require.NoError(t, err)
		for _, l := range repo.Links()[:3] {
			assert.Equal(t, "A", l.Category)
		}
	})

	t.Run("negative index clamps to the front", func(t *testing.T) {
		repo, ls := setup(t)

		_, err := repo.MoveLink(ctx, ls[1], "A", -5)

		require.NoError(t, err)
		assert.Equal(t, []string{"a2", "a1", "a3", "b1"}, titles(repo.Links()))
	})

	t.Run("cross category appends after the last member", func(t *testing.T) {
		for _, idx := range []int{0, 1, 99} {
			repo, ls := setup(t)
			moved, err := repo.MoveLink(ctx, ls[3], "A", idx)

			require.NoError(t, err)
			assert.Equal(t, "A", moved.Category)
			assert.Equal(t, []string{"a1", "a2", "a3", "b1"}, titles(repo.Links()))
			assert.Equal(t, "A", repo.Links()[3].Category)
		}
	})

	t.Run("cross category lands at the end of a non-trailing group", func(t *testing.T) {
		repo, ls := setup(t)

		_, err := repo.MoveLink(ctx, ls[0], "B", 0)

		require.NoError(t, err)
		assert.Equal(t, []string{"a2", "a3", "b1", "a1"}, titles(repo.Links()))
	})

	t.Run("empty destination goes to the very end and is registered", func(t *testing.T) {
		repo, ls := setup(t)

		_, err := repo.MoveLink(ctx, ls[0], "C", 0)

		require.NoError(t, err)
		assert.Equal(t, []string{"a2", "a3", "b1", "a1"}, titles(repo.Links()))
		assert.Equal(t, []string{"A", "B", "C"}, repo.Categories())
	})

	// Same-category offsets count from the first member in the whole
	// sequence, so links of other categories in between shift the result.
	t.Run("interleaved categories count from the first member", func(t *testing.T) {
		tests := []struct {
			name  string
			move  int
			index int
			want  []string
		}{
			{"last to middle", 3, 1, []string{"a1", "a3", "b1", "a2"}},
			{"first to middle", 0, 1, []string{"b1", "a2", "a1", "a3"}},
			{"first to end", 0, 2, []string{"b1", "a2", "a3", "a1"}},
			{"last to end lands before a2", 3, 2, []string{"a1", "b1", "a3", "a2"}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				repo, _ := newTestRepository(t)
				ls := []links.Link{
					mustAdd(t, repo, "a1", "https://a1", "A"),
					mustAdd(t, repo, "b1", "https://b1", "B"),
					mustAdd(t, repo, "a2", "https://a2", "A"),
					mustAdd(t, repo, "a3", "https://a3", "A"),
				}

				_, err := repo.MoveLink(ctx, ls[tt.move], "A", tt.index)

				require.NoError(t, err)
				assert.Equal(t, tt.want, titles(repo.Links()))
			})
		}
	})

	t.Run("missing link is not found", func(t *testing.T) {
		repo, _ := setup(t)

		_, err := repo.MoveLink(ctx, links.Link{Title: "x", URL: "y", Category: "A"}, "A", 0)

		assert.ErrorIs(t, err, links.ErrNotFound)
	})
}

func TestRepository_Persistence(t *testing.T) {
	ctx := context.Background()

	t.Run("every mutation writes both keys", func(t *testing.T) {
		repo, store := newTestRepository(t)
		mustAdd(t, repo, "Docs", "https://go.dev", "Go")

		raw, ok := store.Get(ctx, links.KeyLinks)
		require.True(t, ok)
		assert.JSONEq(t, `[{"title":"Docs","url":"https://go.dev","category":"Go"}]`, raw)

		raw, ok = store.Get(ctx, links.KeyCategories)
		require.True(t, ok)
		assert.JSONEq(t, `["Go"]`, raw)
	})

	t.Run("round trip restores order and content", func(t *testing.T) {
		repo, store := newTestRepository(t)
		mustAdd(t, repo, "b", "https://b", "B")
		mustAdd(t, repo, "a", "https://a", "A")
		mustAdd(t, repo, "c", "https://c", "B")

		fresh := links.NewRepository(store, zerolog.Nop())
		fresh.Load(ctx)

		assert.Equal(t, repo.Links(), fresh.Links())
		assert.Equal(t, repo.Categories(), fresh.Categories())
	})

	t.Run("garbage in the store loads as empty", func(t *testing.T) {
		store := kv.NewMemoryStore()
		store.Set(ctx, links.KeyLinks, "{not json")
		store.Set(ctx, links.KeyCategories, `["Kept"]`)

		repo := links.NewRepository(store, zerolog.Nop())
		repo.Load(ctx)

		assert.Empty(t, repo.Links())
		assert.Equal(t, []string{"Kept"}, repo.Categories())
	})

	t.Run("reads the browser extension storage format", func(t *testing.T) {
		store := kv.NewMemoryStore()
		store.Set(ctx, links.KeyLinks, `[{"title":"GitHub","url":"https://github.com","category":"Dev"}]`)

		repo := links.NewRepository(store, zerolog.Nop())
		repo.Load(ctx)

		assert.Equal(t, []links.Link{{Title: "GitHub", URL: "https://github.com", Category: "Dev"}}, repo.Links())
		assert.Empty(t, repo.Categories())
	})
}

func TestRepository_Search(t *testing.T) {
	repo, _ := newTestRepository(t)
	mustAdd(t, repo, "GitHub", "https://github.com", "Dev")
	mustAdd(t, repo, "Gmail", "https://mail.google.com", "Mail")
	mustAdd(t, repo, "Calendar", "https://calendar.google.com", "Daily")

	assert.Equal(t, []string{"GitHub", "Gmail", "Calendar"}, titles(repo.Search("")))
	assert.Equal(t, []string{"Gmail", "Calendar"}, titles(repo.Search("GOOGLE")))
	assert.Equal(t, []string{"GitHub"}, titles(repo.Search("dev")))
	assert.Empty(t, repo.Search("nothing-here"))
}

func TestGroupByCategory(t *testing.T) {
	t.Run("first appearance order wins over registry order", func(t *testing.T) {
		ls := []links.Link{
			{Title: "1", Category: "B"},
			{Title: "2", Category: "A"},
			{Title: "3", Category: "B"},
			{Title: "4", Category: "C"},
			{Title: "5", Category: "A"},
		}

		groups := links.GroupByCategory(ls)

		require.Len(t, groups, 3)
		assert.Equal(t, "B", groups[0].Category)
		assert.Equal(t, []string{"1", "3"}, titles(groups[0].Links))
		assert.Equal(t, "A", groups[1].Category)
		assert.Equal(t, []string{"2", "5"}, titles(groups[1].Links))
		assert.Equal(t, "C", groups[2].Category)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, links.GroupByCategory(nil))
	})
}
