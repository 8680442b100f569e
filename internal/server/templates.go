package server

import "html/template"

var homeTemplate = template.Must(template.New("home").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<link rel="alternate" type="application/rss+xml" title="{{.Title}}" href="/rss">
</head>
<body>
<header><h1>{{.Title}}</h1></header>
<main>
<ul class="articles">
{{range .Articles}}<li>
  <a href="{{.URL}}"><img src="{{.Thumbnail}}" alt="" loading="lazy">{{.Title}}</a>
  <time datetime="{{.Date.Format "2006-01-02"}}">{{.Date.Format "2 Jan 2006"}}</time>
</li>
{{end}}</ul>
</main>
</body>
</html>
`))

var articleTemplate = template.Must(template.New("article").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Article.Title}}</title>
<meta property="og:title" content="{{.Article.Title}}">
<meta property="og:image" content="{{.Article.Thumbnail}}">
<link rel="alternate" type="application/rss+xml" title="RSS" href="/rss">
</head>
<body>
{{if .Article.IsDraft}}<p class="draft-banner">Draft — not published yet.</p>
{{end}}<article>
{{.Content}}
</article>
<footer>
<time datetime="{{.Article.Date.Format "2006-01-02"}}">{{.Article.Date.Format "2 Jan 2006"}}</time>
{{if .ShowHits}}<span class="hits">{{.Hits.Hits}} hits, {{.Hits.Visitors}} visitors</span>
{{end}}</footer>
</body>
</html>
`))
