package repository

import (
	"github.com/shopspring/decimal"

	"github.com/flicky/storefront/internal/model"
)

// DefaultProducts is the catalog a fresh device starts with.
func DefaultProducts() []model.Product {
	return []model.Product{
		{
			ID:              "p1",
			Name:            "Ek Mukhi Rudraksha",
			Tagline:         "The Eye of Shiva.",
			Description:     "The rarest of all beads, symbolizing the supreme truth and ultimate consciousness.",
			LongDescription: "The 1 Mukhi Rudraksha (Half Moon shape) is the most auspicious bead, representing Lord Shiva himself. It is said to bring the wearer closer to the divine and fulfill all desires while maintaining detachment. Sourced from the high-altitude forests of the Himalayas, each bead is lab-certified for authenticity and comes with a 925 Silver capping.",
			Price:           decimal.NewFromInt(2450),
			Category:        model.CategoryHome,
			ImageURL:        "https://images.unsplash.com/photo-1628155930542-3c7a64e2c833?auto=format&fit=crop&q=80&w=1200",
			Gallery: []string{
				"https://images.unsplash.com/photo-1544735716-392fe2489ffa?auto=format&fit=crop&q=80&w=1200",
				"https://images.unsplash.com/photo-1528459801416-a9e53bbf4e17?auto=format&fit=crop&q=80&w=1200",
			},
			Features:      []string{"Supreme Consciousness", "Mental Clarity", "Abundance & Fortune"},
			Mukhi:         "1",
			Origin:        "Nepal (Himalayan Range)",
			Size:          "22mm - 25mm",
			Vibration:     "963 Hz (Crown Chakra)",
			Certification: "ISO 9001:2015 Certified Lab",
			Stock:         model.IntPtr(2),
		},
		{
			ID:              "p2",
			Name:            "Gauri Shankar Mala",
			Tagline:         "Unity of Two.",
			Description:     "Two naturally joined beads representing the union of Shiva and Shakti.",
			LongDescription: "Gauri Shankar is a rare biological phenomenon where two Rudraksha beads grow together naturally. It symbolizes the divine balance of masculine and feminine energies (Ardhanarishwara). It is highly recommended for improving relationships, bringing peace within the household, and balancing internal energies.",
			Price:           decimal.NewFromInt(899),
			Category:        model.CategoryWearable,
			ImageURL:        "https://images.unsplash.com/photo-1590059501538-4e3188562772?auto=format&fit=crop&q=80&w=1200",
			Gallery: []string{
				"https://images.unsplash.com/photo-1614035654394-4696120409a3?auto=format&fit=crop&q=80&w=1200",
			},
			Features:      []string{"Relationship Harmony", "Inner Balance", "Psychic Awakening"},
			Mukhi:         "2",
			Origin:        "Nepal",
			Size:          "28mm",
			Vibration:     "639 Hz (Heart Chakra)",
			Certification: "Rudraksha Research Institute",
			Stock:         model.IntPtr(8),
		},
		{
			ID:              "p3",
			Name:            "Pancha Mukhi Japa Mala",
			Tagline:         "The Five Elements.",
			Description:     "A traditional 108+1 bead mala for daily meditation and spiritual grounding.",
			LongDescription: "The 5 Mukhi Rudraksha is governed by Kalagni Rudra and is the most powerful bead for general health and blood pressure regulation. Our Japa Malas are meticulously hand-knotted with traditional saffron tassels. Each bead is selected for its uniform size and deep mukhi lines, ensuring a rhythmic counting experience.",
			Price:           decimal.NewFromInt(125),
			Category:        model.CategoryAudio,
			ImageURL:        "https://images.unsplash.com/photo-1542360663-8034a7062c55?auto=format&fit=crop&q=80&w=1200",
			Gallery: []string{
				"https://images.unsplash.com/photo-1535632066927-ab7c9ab60908?auto=format&fit=crop&q=80&w=1200",
			},
			Features:      []string{"Blood Pressure Regulation", "Stress Relief", "Mantra Focus"},
			Mukhi:         "5",
			Origin:        "Java, Indonesia",
			Size:          "8mm",
			Vibration:     "528 Hz (Solar Plexus)",
			Certification: "Authenticated Natural Seed",
			Stock:         model.IntPtr(50),
		},
		{
			ID:              "p4",
			Name:            "Surya 12 Mukhi Bead",
			Tagline:         "Solar Radiance.",
			Description:     "A powerful bead for leadership, self-confidence, and vitality.",
			LongDescription: "Representing the 12 Adityas (Suns), the 12 Mukhi Rudraksha for those who seek power and authority. It dispels fear and provides the wearer with the radiance of the sun. It is particularly beneficial for professionals, leaders, and those suffering from low confidence.",
			Price:           decimal.NewFromInt(549),
			Category:        model.CategoryWearable,
			ImageURL:        "https://images.unsplash.com/photo-1614035654394-4696120409a3?auto=format&fit=crop&q=80&w=1200",
			Features:        []string{"Leadership Ability", "Radiant Energy", "Fearlessness"},
			Mukhi:           "12",
			Origin:          "Nepal",
			Size:            "18mm",
			Vibration:       "126.22 Hz (Sun Frequency)",
			Certification:   "X-Ray Verified",
			Stock:           model.IntPtr(4),
		},
		{
			ID:              "p5",
			Name:            "Rudraksha Silver Bracelet",
			Tagline:         "Sacred Protection.",
			Description:     "A modern design featuring 5 Mukhi beads encased in pure 925 Sterling Silver.",
			LongDescription: "Crafted for the modern seeker, this bracelet combines the ancient power of Rudraksha with the elegance of sterling silver. It acts as a protective shield against negative energies while maintaining a sophisticated aesthetic. Perfect for daily wear in professional environments.",
			Price:           decimal.NewFromInt(299),
			Category:        model.CategoryWearable,
			ImageURL:        "https://images.unsplash.com/photo-1535632066927-ab7c9ab60908?auto=format&fit=crop&q=80&w=1200",
			Features:        []string{"Energy Shield", "Sterling Silver", "Adjustable Fit"},
			Mukhi:           "5",
			Origin:          "Indonesian Origin Beads",
			Size:            "Adjustable",
			Vibration:       "Neutralizing Static",
			Certification:   "Silver Purity Hallmarked",
			Stock:           model.IntPtr(12),
		},
		{
			ID:              "p6",
			Name:            "Siddh Mala",
			Tagline:         "Ultimate Alchemy.",
			Description:     "The most powerful combination of 1 to 14 Mukhi beads for complete life transformation.",
			LongDescription: "The Siddh Mala is a masterpiece of spiritual engineering. It contains a collection of beads from 1 Mukhi to 14 Mukhi, Gaurishankar, and Ganesh Rudraksha. It is designed to balance all the chakras, protect the wearer from all directions, and accelerate spiritual growth exponentially.",
			Price:           decimal.NewFromInt(4500),
			Category:        model.CategoryHome,
			ImageURL:        "https://images.unsplash.com/photo-1596464716127-f2a82984de30?auto=format&fit=crop&q=80&w=1200",
			Features:        []string{"Full Chakra Alignment", "Spiritual Mastery", "Universal Protection"},
			Mukhi:           "1-14 Complex",
			Origin:          "Premium Nepalese Collection",
			Size:            "Full Length",
			Vibration:       "Complete Spectrum",
			Certification:   "Individual X-Ray Report for each Bead",
			Stock:           model.IntPtr(1),
		},
	}
}

// DefaultBanners is the slider a fresh device starts with.
func DefaultBanners() []model.Banner {
	return []model.Banner{
		{
			ID:       "b1",
			ImageURL: "https://images.unsplash.com/photo-1603204000325-300451a94017?q=80&w=2000&auto=format&fit=crop",
			Title:    "Rudraksh Utsav",
			Subtitle: "Celebrating Divine Peace & Prosperity",
			Link:     "#products",
			Active:   true,
		},
		{
			ID:       "b2",
			ImageURL: "https://images.unsplash.com/photo-1544735716-392fe2489ffa?auto=format&fit=crop&q=80&w=2000",
			Title:    "Himalayan Collection",
			Subtitle: "Direct from the sacred mountains",
			Link:     "#about",
			Active:   true,
		},
	}
}
