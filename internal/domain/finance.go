package domain

// FinancePartner is the institution behind the Financial Buddy pages.
const FinancePartner = "Fidelity Investments"

// FinanceOffer is one partner link shown on the finance page.
type FinanceOffer struct {
	Title       string
	Description string
	Highlights  []string
	URL         string
}

// FinanceOffers lists the partner links in display order.
var FinanceOffers = []FinanceOffer{
	{
		Title:       "Why Fidelity?",
		Description: "Learn why Fidelity is the right choice for students",
		Highlights: []string{
			"No minimum balance requirements",
			"Zero account fees",
			"Student-focused financial education",
			"Mobile-first banking experience",
		},
		URL: "https://www.fidelity.com/about-fidelity/our-company",
	},
	{
		Title:       "Talk to an Advisor",
		Description: "Schedule a personalized financial consultation",
		Highlights: []string{
			"Create a financial plan",
			"Understand investment options",
			"Plan for student loan management",
			"Set up your first account",
		},
		URL: "https://digital.fidelity.com/prgw/digital/faa/0/connect-with-an-advisor",
	},
	{
		Title:       "Start Investing",
		Description: "Begin your investment journey today",
		Highlights: []string{
			"Commission-free trading",
			"Fractional share investing",
			"Educational resources",
		},
		URL: "https://www.fidelity.com",
	},
}
