// Package legal carries the static legal text panels. The copy is fixed at
// build time; nothing here touches the network.
package legal

// Section is one heading/body pair inside a panel.
type Section struct {
	Heading string
	Body    string
}

// Panel is a titled legal text displayed in the terms overlay.
type Panel struct {
	Title    string
	Sections []Section
}

// Panels returns the four legal panels in display order.
func Panels() []Panel {
	return []Panel{
		{
			Title: "Privacy Policy",
			Sections: []Section{
				{"Overview", "akram _library respects your privacy and is committed to protecting the integrity of your personal browsing habits within our digital library."},
				{"Data Collection", "We do not require account registration. No personal identifying information is stored. Search queries are processed in real time to provide bibliographic results from the Open Library API."},
				{"AI Processing", "Literary recommendations and summaries are generated using the Google Gemini API. Your queries are sent to Google for processing but are not linked to a personal profile."},
				{"Third Parties", "Links to Open Library, the Internet Archive, and Google services are subject to their respective privacy policies."},
			},
		},
		{
			Title: "Disclaimer",
			Sections: []Section{
				{"Bibliographic Accuracy", "Metadata, summaries, and cover images are retrieved from the Open Library API. We cannot guarantee the absolute accuracy or completeness of this external data."},
				{"AI Content", "All AI-generated insights are powered by large language models and may occasionally contain inaccuracies. Verify critical information with primary sources."},
				{"Academic Nature", "This application is a curated digital gateway designed for academic exploration. It does not provide medical, legal, or professional advice."},
			},
		},
		{
			Title: "DMCA & Intellectual Property",
			Sections: []Section{
				{"Source Attribution", "akram _library is a metadata interface that displays information and covers provided by the Open Library and the Internet Archive. No book files are hosted here."},
				{"Copyright Policy", "We respect the intellectual property rights of authors and publishers. Formal infringement notifications may be submitted to the project administrators."},
				{"Notice Procedure", "Because content is served directly from Open Library, DMCA notices should also be directed to info@archive.org for removal at the source."},
			},
		},
		{
			Title: "Copyright Notice",
			Sections: []Section{
				{"Literary Works", "Copyright for all book titles, descriptions, and cover art remains with the respective authors, estates, or publishers."},
				{"Data Credits", "Bibliographic metadata is sourced from the Open Library, a project of the Internet Archive, under various open licenses."},
				{"Academic Use", "Users are encouraged to cite the source archives when referencing data found through this portal."},
			},
		},
	}
}
