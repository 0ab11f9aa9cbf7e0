// Package views renders the HTML pages as templ components. Dynamic
// text goes through templ.EscapeString; components read the CSRF token
// and base path from the request context.
package views

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/a-h/templ"

	appI18n "github.com/pavelanni/quizmaster/internal/i18n"
	"github.com/pavelanni/quizmaster/internal/model"
)

func layout(ctx context.Context, title, body string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\">\n")
	b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
	fmt.Fprintf(&b, "<title>%s — %s</title>\n",
		templ.EscapeString(title), templ.EscapeString(appI18n.T(ctx, "AppTitle")))
	b.WriteString(`<style>
body { font-family: system-ui, sans-serif; max-width: 640px; margin: 2rem auto; padding: 0 1rem; color: #222; }
h1 { font-size: 1.5rem; }
form { margin: 1rem 0; }
label { display: block; margin: .5rem 0 .25rem; }
input[type=text], input[type=email], input[type=password], select { width: 100%; padding: .4rem; }
button { margin-top: 1rem; padding: .5rem 1.25rem; cursor: pointer; }
.msg { padding: .5rem .75rem; background: #fff3cd; border: 1px solid #ffe69c; border-radius: 4px; }
.error { background: #f8d7da; border-color: #f1aeb5; }
.option { display: block; margin: .5rem 0; }
.correct { color: #146c43; }
.incorrect { color: #b02a37; }
table { border-collapse: collapse; width: 100%; margin-top: 1rem; }
td, th { border: 1px solid #ddd; padding: .4rem .6rem; text-align: left; }
nav { display: flex; justify-content: space-between; margin-bottom: 1.5rem; }
</style>
</head>
<body>
`)
	b.WriteString(body)
	b.WriteString("\n</body>\n</html>\n")
	return b.String()
}

func render(w io.Writer, page string) error {
	_, err := io.WriteString(w, page)
	return err
}

// href prefixes a path with the base path from context.
func href(ctx context.Context, path string) string {
	return model.BasePathFromContext(ctx) + path
}

func csrfField(ctx context.Context) string {
	token := model.CSRFTokenFromContext(ctx)
	return fmt.Sprintf(`<input type="hidden" name="csrf_token" value="%s">`,
		templ.EscapeString(token))
}

func flash(msg string, isError bool) string {
	if msg == "" {
		return ""
	}
	class := "msg"
	if isError {
		class += " error"
	}
	return fmt.Sprintf(`<p class="%s">%s</p>`, class, templ.EscapeString(msg))
}

func userNav(ctx context.Context) string {
	u := model.UserFromContext(ctx)
	if u == nil {
		return ""
	}
	return fmt.Sprintf(`<nav><span>%s</span> <a href="%s">%s</a></nav>`,
		templ.EscapeString(appI18n.Td(ctx, "Welcome", map[string]any{"Username": u.Username})),
		href(ctx, "/logout"),
		templ.EscapeString(appI18n.T(ctx, "Logout")))
}

// LandingPage is the landing page with the login form. msg is an error
// or flash message to show above the form.
func LandingPage(msg string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		fmt.Fprintf(&b, "<h1>%s</h1>\n", templ.EscapeString(appI18n.T(ctx, "AppTitle")))
		b.WriteString(flash(msg, msg == appI18n.T(ctx, "LoginError")))
		fmt.Fprintf(&b, `<form method="post" action="%s">%s
<label for="email">%s</label>
<input type="email" id="email" name="email" required>
<label for="password">%s</label>
<input type="password" id="password" name="password" required>
<button type="submit">%s</button>
</form>
<p>%s <a href="%s">%s</a></p>`,
			href(ctx, "/login"), csrfField(ctx),
			templ.EscapeString(appI18n.T(ctx, "Email")),
			templ.EscapeString(appI18n.T(ctx, "Password")),
			templ.EscapeString(appI18n.T(ctx, "Login")),
			templ.EscapeString(appI18n.T(ctx, "NoAccount")),
			href(ctx, "/register"),
			templ.EscapeString(appI18n.T(ctx, "Register")))
		return render(w, layout(ctx, appI18n.T(ctx, "Login"), b.String()))
	})
}

// RegisterPage is the account registration form.
func RegisterPage(msg string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		fmt.Fprintf(&b, "<h1>%s</h1>\n", templ.EscapeString(appI18n.T(ctx, "Register")))
		b.WriteString(flash(msg, true))
		fmt.Fprintf(&b, `<form method="post" action="%s">%s
<label for="email">%s</label>
<input type="email" id="email" name="email" required>
<label for="username">%s</label>
<input type="text" id="username" name="username" required>
<label for="password">%s</label>
<input type="password" id="password" name="password" required>
<button type="submit">%s</button>
</form>
<p>%s <a href="%s">%s</a></p>`,
			href(ctx, "/register"), csrfField(ctx),
			templ.EscapeString(appI18n.T(ctx, "Email")),
			templ.EscapeString(appI18n.T(ctx, "Username")),
			templ.EscapeString(appI18n.T(ctx, "Password")),
			templ.EscapeString(appI18n.T(ctx, "Register")),
			templ.EscapeString(appI18n.T(ctx, "HaveAccount")),
			href(ctx, "/"),
			templ.EscapeString(appI18n.T(ctx, "Login")))
		return render(w, layout(ctx, appI18n.T(ctx, "Register"), b.String()))
	})
}

// HomePage lists categories with their question counts.
func HomePage(counts map[string]int, msg string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		names := make([]string, 0, len(counts))
		for name := range counts {
			names = append(names, name)
		}
		sort.Strings(names)

		var b strings.Builder
		b.WriteString(userNav(ctx))
		fmt.Fprintf(&b, "<h1>%s</h1>\n", templ.EscapeString(appI18n.T(ctx, "ChooseCategory")))
		b.WriteString(flash(msg, true))
		b.WriteString("<ul>\n")
		for _, name := range names {
			fmt.Fprintf(&b, `<li><a href="%s">%s</a> — %s</li>`+"\n",
				href(ctx, "/category/"+url.PathEscape(name)),
				templ.EscapeString(titleCase(name)),
				templ.EscapeString(appI18n.Tp(ctx, "QuestionsAvailable", counts[name])))
		}
		b.WriteString("</ul>\n")
		return render(w, layout(ctx, appI18n.T(ctx, "ChooseCategory"), b.String()))
	})
}

// CategoryPage shows one category and the quiz start form.
func CategoryPage(category string, count int, msg string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(userNav(ctx))
		fmt.Fprintf(&b, "<h1>%s</h1>\n", templ.EscapeString(titleCase(category)))
		b.WriteString(flash(msg, true))
		fmt.Fprintf(&b, "<p>%s</p>\n", templ.EscapeString(appI18n.Tp(ctx, "QuestionsAvailable", count)))
		fmt.Fprintf(&b, `<form method="post" action="%s">%s
<input type="hidden" name="category" value="%s">
<label for="total_questions">%s</label>
<select id="total_questions" name="total_questions">`,
			href(ctx, "/start"), csrfField(ctx),
			templ.EscapeString(category),
			templ.EscapeString(appI18n.T(ctx, "NumQuestions")))
		for i := 1; i <= count; i++ {
			fmt.Fprintf(&b, `<option value="%d">%d</option>`, i, i)
		}
		fmt.Fprintf(&b, "</select>\n<button type=\"submit\">%s</button>\n</form>\n",
			templ.EscapeString(appI18n.T(ctx, "StartQuiz")))
		fmt.Fprintf(&b, `<p><a href="%s">%s</a></p>`,
			href(ctx, "/home"), templ.EscapeString(appI18n.T(ctx, "BackHome")))
		return render(w, layout(ctx, titleCase(category), b.String()))
	})
}

// QuizPage shows the current question with its options.
func QuizPage(q model.Question, number, total int) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(userNav(ctx))
		fmt.Fprintf(&b, "<h1>%s</h1>\n", templ.EscapeString(
			appI18n.Td(ctx, "QuestionOf", map[string]any{"Number": number, "Total": total})))
		fmt.Fprintf(&b, "<p>%s</p>\n", templ.EscapeString(q.Text))
		fmt.Fprintf(&b, `<form method="post" action="%s">%s`+"\n", href(ctx, "/submit"), csrfField(ctx))
		for _, label := range model.OptionLabels {
			fmt.Fprintf(&b, `<label class="option"><input type="radio" name="answer" value="%s"> %s. %s</label>`+"\n",
				label, label, templ.EscapeString(q.Options[label]))
		}
		fmt.Fprintf(&b, "<button type=\"submit\">%s</button>\n</form>\n",
			templ.EscapeString(appI18n.T(ctx, "SubmitAnswer")))
		return render(w, layout(ctx, appI18n.T(ctx, "AppTitle"), b.String()))
	})
}

// ResultsPage shows the scored summary and every answer given.
func ResultsPage(res model.QuizResults) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(userNav(ctx))
		fmt.Fprintf(&b, "<h1>%s — %s</h1>\n",
			templ.EscapeString(appI18n.T(ctx, "Results")),
			templ.EscapeString(titleCase(res.Category)))
		fmt.Fprintf(&b, "<p>%s: <strong>%s%%</strong></p>\n",
			templ.EscapeString(appI18n.T(ctx, "Score")), formatScore(res.Score))
		fmt.Fprintf(&b, "<p>%s: %d / %d</p>\n",
			templ.EscapeString(appI18n.T(ctx, "CorrectAnswers")), res.Correct, res.TotalQuestions)
		fmt.Fprintf(&b, "<p>%s: %s</p>\n",
			templ.EscapeString(appI18n.T(ctx, "TimeTaken")), templ.EscapeString(res.TimeTaken))

		b.WriteString("<table>\n<tr><th></th><th>")
		b.WriteString(templ.EscapeString(appI18n.T(ctx, "YourAnswer")))
		b.WriteString("</th><th>")
		b.WriteString(templ.EscapeString(appI18n.T(ctx, "CorrectAnswer")))
		b.WriteString("</th></tr>\n")
		for _, a := range res.Answers {
			verdict := `<span class="incorrect">✗</span>`
			if a.IsCorrect {
				verdict = `<span class="correct">✓</span>`
			}
			fmt.Fprintf(&b, "<tr><td>%s %s</td><td>%s</td><td>%s. %s</td></tr>\n",
				verdict,
				templ.EscapeString(a.Question),
				templ.EscapeString(answerText(a.UserAnswer, a.Options)),
				templ.EscapeString(a.CorrectAnswer),
				templ.EscapeString(a.Options[a.CorrectAnswer]))
		}
		b.WriteString("</table>\n")
		fmt.Fprintf(&b, `<p><a href="%s">%s</a></p>`,
			href(ctx, "/home"), templ.EscapeString(appI18n.T(ctx, "BackHome")))
		return render(w, layout(ctx, appI18n.T(ctx, "Results"), b.String()))
	})
}

// ErrorPage renders a standalone error message.
func ErrorPage(msg string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(userNav(ctx))
		fmt.Fprintf(&b, "<h1>%s</h1>\n", templ.EscapeString(appI18n.T(ctx, "AppTitle")))
		b.WriteString(flash(msg, true))
		return render(w, layout(ctx, appI18n.T(ctx, "AppTitle"), b.String()))
	})
}

// answerText renders a recorded answer label with its option text, or
// the raw value when it was not a valid label.
func answerText(label string, options map[string]string) string {
	if text, ok := options[label]; ok {
		return label + ". " + text
	}
	if label == "" {
		return "—"
	}
	return label
}

// formatScore trims trailing zeros so 75.00 renders as 75 and 66.67 as 66.67.
func formatScore(score float64) string {
	s := fmt.Sprintf("%.2f", score)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

// titleCase upper-cases the first rune, like the category links expect.
func titleCase(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
