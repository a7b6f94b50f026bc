package dashboard

import "strconv"

func formatPercent(f float64) string {
	return strconv.FormatFloat(f*100, 'f', 1, 64)
}

const indexHTML = `<!DOCTYPE html>
<html lang="fr">
<head>
<meta charset="utf-8">
<title>{{.ClubName}} - Interclubs</title>
<style>
body { font-family: sans-serif; margin: 2em 8%; }
table { border-collapse: collapse; margin-bottom: 2em; }
th, td { padding: 0.3em 1em; border-bottom: 1px solid #ddd; text-align: right; }
th:first-child, td:first-child { text-align: left; }
</style>
</head>
<body>
<h1>Résultats des joueuses et joueurs de l'{{.ClubName}} lors des Interclubs</h1>
<hr>
{{- if not .Sections}}
<p>Aucun résultat pour le moment.</p>
{{- end}}
{{- range .Sections}}
<h3>{{.Title}}</h3>
<table>
<tr><th>Discipline</th><th>Nombre de victoires</th><th>Nombre de défaites</th><th>Pourcentage de victoires (%)</th></tr>
{{- range .Summaries}}
<tr><td>{{.Discipline}}</td><td>{{.Wins}}</td><td>{{.Losses}}</td><td>{{percent .WinPercentage}}</td></tr>
{{- end}}
</table>
{{- end}}
</body>
</html>
`
