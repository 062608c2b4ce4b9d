package bot

import (
	"fmt"
	"strings"

	"gitlab.com/yelinaung/household-finance/internal/finance"
)

// insightTemplates holds the English text for each insight key. Placeholders
// use the {{name}} form and are filled from the insight params.
var insightTemplates = map[string]string{
	"dashboard.insights.criticalBalanceTitle":    "Critical balance",
	"dashboard.insights.criticalBalanceText":     "Your balance is {{balance}} {{currency}}. Spending has overtaken income.",
	"dashboard.insights.highSpendingTitle":       "High spending",
	"dashboard.insights.highSpendingText":        "You spend {{avg}} {{currency}} a day on average, above your daily target of {{target}} {{currency}}.",
	"dashboard.insights.budgetControlTitle":      "Budget under control",
	"dashboard.insights.budgetControlText":       "Average daily spend of {{avg}} {{currency}} is comfortably within your limit.",
	"dashboard.insights.categoryWarningTitle":    "Category alert",
	"dashboard.insights.categoryWarningText":     "{{category}} takes {{percent}}% of your spending ({{amount}} {{currency}}).",
	"dashboard.insights.paymentApproachingTitle": "Payday approaching",
	"dashboard.insights.paymentApproachingText":  "{{source}} arrives in {{days}} days.",
	"dashboard.insights.upcomingPaymentTitle":    "Upcoming payment",
	"dashboard.insights.upcomingPaymentText":     "{{name}} is due in {{days}} days.",
}

// renderTemplate resolves key and fills its placeholders. Unknown keys render
// as the key itself.
func renderTemplate(key string, params map[string]any) string {
	tmpl, ok := insightTemplates[key]
	if !ok {
		return key
	}
	for name, value := range params {
		tmpl = strings.ReplaceAll(tmpl, "{{"+name+"}}", escapeHTML(fmt.Sprint(value)))
	}
	return tmpl
}

// renderInsight formats one insight as an HTML line pair.
func renderInsight(in finance.Insight, currency string) string {
	params := make(map[string]any, len(in.Params)+1)
	for k, v := range in.Params {
		params[k] = v
	}
	params["currency"] = currency

	return fmt.Sprintf("%s <b>%s</b>\n%s",
		in.Icon,
		renderTemplate(in.TitleKey, params),
		renderTemplate(in.TextKey, params))
}

// renderInsights formats a list of insights separated by blank lines.
func renderInsights(insights []finance.Insight, currency string) string {
	parts := make([]string, 0, len(insights))
	for _, in := range insights {
		parts = append(parts, renderInsight(in, currency))
	}
	return strings.Join(parts, "\n\n")
}
