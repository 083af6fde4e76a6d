// Package content holds the agency's static site catalog: services,
// portfolio entries, and the case studies behind them.
package content

// Service describes one agency offering.
type Service struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	ShortDescription string   `json:"shortDescription"`
	FullDescription  string   `json:"fullDescription"`
	Icon             string   `json:"icon"`
	Features         []string `json:"features"`
}

// CaseStudy is a portfolio entry with its full case-study detail.
type CaseStudy struct {
	ID              int      `json:"id"`
	Client          string   `json:"client"`
	Category        string   `json:"category"`
	Image           string   `json:"image"`
	Video           string   `json:"video,omitempty"`
	FullDescription string   `json:"fullDescription"`
	Challenge       string   `json:"challenge"`
	Solution        string   `json:"solution"`
	Results         []string `json:"results"`
}

// Services returns the service catalog.
func Services() []Service {
	return services
}

// ServiceByID looks up one service.
func ServiceByID(id string) (Service, bool) {
	for _, s := range services {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}

// Portfolio returns all portfolio entries.
func Portfolio() []CaseStudy {
	return portfolio
}

// CaseStudyByID looks up one case study.
func CaseStudyByID(id int) (CaseStudy, bool) {
	for _, c := range portfolio {
		if c.ID == id {
			return c, true
		}
	}
	return CaseStudy{}, false
}

var services = []Service{
	{
		ID:               "social-media",
		Title:            "Social Media Management",
		ShortDescription: "Data-driven growth for your social channels.",
		FullDescription:  "We handle everything from strategy to posting, engagement, and reporting. Our goal is to build a community around your brand that converts into loyal customers.",
		Icon:             "fa-share-nodes",
		Features:         []string{"Strategy Development", "Community Management", "Content Scheduling", "Analytics & Reporting"},
	},
	{
		ID:               "content-creation",
		Title:            "Creative Content",
		ShortDescription: "Static posts and cinematic reels that captivate.",
		FullDescription:  "Our creative team produces visually stunning static posts and high-energy reels tailored for Instagram, TikTok, and LinkedIn. We tell stories that stop the scroll.",
		Icon:             "fa-clapperboard",
		Features:         []string{"Static Graphic Design", "Video Reels & Shorts", "Motion Graphics", "Copywriting"},
	},
	{
		ID:               "production",
		Title:            "Production Shoot",
		ShortDescription: "Professional studio and on-site production.",
		FullDescription:  "From high-end product photography to commercial video shoots, our production team ensures your brand looks premium and professional.",
		Icon:             "fa-camera-retro",
		Features:         []string{"Commercial Videography", "Product Photography", "Post-Production", "Set Design"},
	},
	{
		ID:               "performance-marketing",
		Title:            "Performance Marketing",
		ShortDescription: "ROI-focused campaigns that drive results.",
		FullDescription:  "We optimize your ad spend across Google, Meta, and LinkedIn to ensure you get the highest possible return on investment.",
		Icon:             "fa-chart-line",
		Features:         []string{"PPC Campaigns", "Paid Social", "Conversion Rate Optimization", "Funnel Strategy"},
	},
	{
		ID:               "creative-ideas",
		Title:            "Creative Ideation",
		ShortDescription: "Brainstorming the next big trend for your brand.",
		FullDescription:  "Stuck in a rut? Our creative consultants provide fresh ideas and innovative concepts to keep your brand ahead of the curve.",
		Icon:             "fa-lightbulb",
		Features:         []string{"Trend Research", "Campaign Concepting", "Brand Voice Development", "Viral Hook Strategy"},
	},
}

var portfolio = []CaseStudy{
	{
		ID:              1,
		Client:          "Luxe Wear",
		Category:        "Production & Social",
		Image:           "https://images.unsplash.com/photo-1490481651871-ab68de25d43d?auto=format&fit=crop&q=80&w=800",
		Video:           "https://assets.mixkit.co/videos/preview/mixkit-woman-filming-with-her-smartphone-43487-large.mp4",
		FullDescription: "A high-end fashion brand looking to redefine its digital presence through cinematic reels and premium photography.",
		Challenge:       "Luxe Wear struggled with low engagement despite high-quality products. Their feed felt static and disconnected from modern consumer behavior.",
		Solution:        "We implemented a \"Cinematic First\" strategy, producing short-form video content that highlighted the craftsmanship and lifestyle of the brand.",
		Results:         []string{"250% increase in engagement", "45% growth in follower base", "Highest sales month on record"},
	},
	{
		ID:              2,
		Client:          "Aero Tech",
		Category:        "Performance Marketing",
		Image:           "https://images.unsplash.com/photo-1451187580459-43490279c0fa?auto=format&fit=crop&q=80&w=800",
		Video:           "https://assets.mixkit.co/videos/preview/mixkit-designer-working-on-a-tablet-40158-large.mp4",
		FullDescription: "Revolutionizing performance marketing for a cutting-edge aerospace startup.",
		Challenge:       "High cost-per-acquisition (CPA) was bleeding their marketing budget with little return.",
		Solution:        "We rebuilt their entire funnel from scratch, focusing on hyper-targeted LinkedIn ads and high-converting landing pages.",
		Results:         []string{"60% reduction in CPA", "3.5x Return on Ad Spend (ROAS)", "120% increase in qualified leads"},
	},
	{
		ID:              3,
		Client:          "Glow Skincare",
		Category:        "Content Creation",
		Image:           "https://images.unsplash.com/photo-1556228720-195a672e8a03?auto=format&fit=crop&q=80&w=800",
		Video:           "https://assets.mixkit.co/videos/preview/mixkit-holding-a-smartphone-in-horizontal-position-at-a-party-39871-large.mp4",
		FullDescription: "Creating a viral content machine for a sustainable skincare brand.",
		Challenge:       "Glow needed to stand out in a saturated market and build trust with Gen-Z audiences.",
		Solution:        "We partnered with micro-influencers and created \"Behind the Glow\" BTS content to showcase their sustainable manufacturing process.",
		Results:         []string{"Viral hit with 1.2M views", "Sold out entire inventory in 48 hours", "Nominated for Best Digital Campaign"},
	},
	{
		ID:              4,
		Client:          "FitFuel",
		Category:        "Social Media Management",
		Image:           "https://images.unsplash.com/photo-1517836357463-d25dfeac3438?auto=format&fit=crop&q=80&w=800",
		Video:           "https://assets.mixkit.co/videos/preview/mixkit-man-working-out-at-a-gym-with-dumbbells-4693-large.mp4",
		FullDescription: "Building a fitness community that transcends digital boundaries.",
		Challenge:       "FitFuel was perceived as just another supplement company with no soul.",
		Solution:        "Shifted focus from products to people. We launched a weekly challenge series that encouraged community participation.",
		Results:         []string{"Active community of 50k+ members", "200% increase in user-generated content", "Consistent 15% month-over-month growth"},
	},
}
