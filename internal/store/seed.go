package store

import (
	"time"

	"github.com/farihasabaya/storefront/internal/catalog"
)

const placeholderImage = "/api/placeholder/400/600"

func day(s string) time.Time {
	t, _ := time.Parse(time.DateOnly, s)
	return t
}

func price(v float64) *float64 { return &v }

func gulfHours() catalog.WeeklyHours {
	return catalog.WeeklyHours{
		Monday: "10:00 AM - 10:00 PM", Tuesday: "10:00 AM - 10:00 PM", Wednesday: "10:00 AM - 10:00 PM",
		Thursday: "10:00 AM - 10:00 PM", Friday: "2:00 PM - 11:00 PM", Saturday: "10:00 AM - 11:00 PM",
		Sunday: "10:00 AM - 10:00 PM",
	}
}

// SeedProducts is the launch collection.
func SeedProducts() []catalog.Product {
	return []catalog.Product{
		{
			ID: "1", Name: "Midnight Elegance Abaya", Category: "premium",
			Price: 349.99, DiscountPrice: price(299.99),
			Colors: []string{"black", "navy"}, Sizes: []string{"S", "M", "L", "XL"},
			Image: placeholderImage, Images: []string{placeholderImage, placeholderImage},
			Description: "Luxurious silk abaya with intricate gold embroidery",
			Features:    []string{"Premium Silk", "Hand Embroidered", "Classic Fit"},
			InStock:     true, IsFeatured: true, Rating: 4.8, ReviewCount: 124, CreatedAt: day("2024-01-15"),
		},
		{
			ID: "2", Name: "Desert Rose Collection", Category: "casual", Price: 189.99,
			Colors: []string{"rose", "beige"}, Sizes: []string{"XS", "S", "M", "L"},
			Image: placeholderImage, Images: []string{placeholderImage},
			Description: "Flowing chiffon abaya perfect for everyday elegance",
			Features:    []string{"Lightweight Chiffon", "Breathable", "Easy Care"},
			InStock:     true, IsNew: true, Rating: 4.6, ReviewCount: 89, CreatedAt: day("2024-02-20"),
		},
		{
			ID: "3", Name: "Royal Burgundy Statement", Category: "luxury", Price: 459.99,
			Colors: []string{"burgundy"}, Sizes: []string{"M", "L", "XL"},
			Image: placeholderImage, Images: []string{placeholderImage, placeholderImage},
			Description: "Luxurious velvet abaya with pearl detailing",
			Features:    []string{"Premium Velvet", "Pearl Accents", "Limited Edition"},
			InStock:     true, IsNew: true, IsFeatured: true, Rating: 4.9, ReviewCount: 67, CreatedAt: day("2024-03-01"),
		},
		{
			ID: "4", Name: "Golden Shimmer Evening", Category: "evening",
			Price: 399.99, DiscountPrice: price(329.99),
			Colors: []string{"gold", "champagne"}, Sizes: []string{"S", "M", "L"},
			Image: placeholderImage, Images: []string{placeholderImage},
			Description: "Glamorous evening abaya with subtle shimmer",
			Features:    []string{"Shimmer Fabric", "Evening Wear", "Elegant Cut"},
			IsFeatured:  true, Rating: 4.7, ReviewCount: 156, CreatedAt: day("2023-12-10"),
		},
		{
			ID: "5", Name: "Contemporary Classic", Category: "casual", Price: 149.99,
			Colors: []string{"black", "navy", "gray"}, Sizes: []string{"XS", "S", "M", "L", "XL"},
			Image: placeholderImage, Images: []string{placeholderImage},
			Description: "Modern cut abaya for contemporary women",
			Features:    []string{"Cotton Blend", "Modern Fit", "Versatile"},
			InStock:     true, Rating: 4.4, ReviewCount: 203, CreatedAt: day("2023-11-15"),
		},
		{
			ID: "6", Name: "Embroidered Heritage", Category: "traditional", Price: 279.99,
			Colors: []string{"navy", "emerald"}, Sizes: []string{"S", "M", "L"},
			Image: placeholderImage, Images: []string{placeholderImage, placeholderImage},
			Description: "Traditional embroidered abaya with modern comfort",
			Features:    []string{"Hand Embroidery", "Traditional Design", "Premium Cotton"},
			InStock:     true, Rating: 4.5, ReviewCount: 78, CreatedAt: day("2024-01-08"),
		},
	}
}

// SeedStores is the boutique network.
func SeedStores() []catalog.Store {
	return []catalog.Store{
		{
			ID: "1", Name: "Fariha's Abaya Flagship Store",
			Description: "Our flagship store offering the complete Fariha's Abaya experience with personal styling and exclusive collections.",
			Address: catalog.Address{Street: "123 Fashion District", City: "Dubai", State: "Dubai", Country: "UAE", ZipCode: "12345",
				Coordinates: catalog.GeoPoint{Lat: 25.2048, Lng: 55.2708}},
			Contact:  catalog.Contact{Phone: "+971-4-123-4567", Email: "dubai@farihasabaya.com", WhatsApp: "+971-50-123-4567"},
			Hours:    gulfHours(),
			TimeZone: "Asia/Dubai",
			Features: []string{"Personal Styling Service", "Alterations Available", "VIP Fitting Room",
				"Complimentary Refreshments", "Private Appointments", "Wedding Collection"},
			Rating: 4.9, ReviewCount: 234, Image: "/api/placeholder/600/400", IsActive: true, IsFlagship: true,
		},
		{
			ID: "2", Name: "Fariha's Abaya London",
			Description: "Located in the heart of London's shopping district, offering premium abayas and personalized service.",
			Address: catalog.Address{Street: "45 Oxford Street", City: "London", State: "England", Country: "UK", ZipCode: "W1D 2DZ",
				Coordinates: catalog.GeoPoint{Lat: 51.5074, Lng: -0.1278}},
			Contact: catalog.Contact{Phone: "+44-20-7123-4567", Email: "london@farihasabaya.com", WhatsApp: "+44-7712-345678"},
			Hours: catalog.WeeklyHours{
				Monday: "9:00 AM - 8:00 PM", Tuesday: "9:00 AM - 8:00 PM", Wednesday: "9:00 AM - 8:00 PM",
				Thursday: "9:00 AM - 9:00 PM", Friday: "9:00 AM - 9:00 PM", Saturday: "9:00 AM - 9:00 PM",
				Sunday: "11:00 AM - 6:00 PM",
			},
			TimeZone: "Europe/London",
			Features: []string{"Personal Shopping", "Express Alterations", "Gift Wrapping", "Student Discount", "Online Click & Collect"},
			Rating:   4.7, ReviewCount: 156, Image: "/api/placeholder/600/400", IsActive: true,
		},
		{
			ID: "3", Name: "Fariha's Abaya New York",
			Description: "Elegant showroom on Fifth Avenue featuring our latest collections and exclusive New York designs.",
			Address: catalog.Address{Street: "789 Fifth Avenue", City: "New York", State: "NY", Country: "USA", ZipCode: "10022",
				Coordinates: catalog.GeoPoint{Lat: 40.7589, Lng: -73.9851}},
			Contact: catalog.Contact{Phone: "+1-212-123-4567", Email: "newyork@farihasabaya.com", WhatsApp: "+1-917-123-4567"},
			Hours: catalog.WeeklyHours{
				Monday: "10:00 AM - 8:00 PM", Tuesday: "10:00 AM - 8:00 PM", Wednesday: "10:00 AM - 8:00 PM",
				Thursday: "10:00 AM - 8:00 PM", Friday: "10:00 AM - 8:00 PM", Saturday: "10:00 AM - 9:00 PM",
				Sunday: "12:00 PM - 6:00 PM",
			},
			TimeZone: "America/New_York",
			Features: []string{"Personal Stylist", "Same-Day Alterations", "Luxury Packaging", "VIP Membership Program", "Private Shopping Events"},
			Rating:   4.8, ReviewCount: 189, Image: "/api/placeholder/600/400", IsActive: true,
		},
		{
			ID: "4", Name: "Fariha's Abaya Toronto",
			Description: "Serving Toronto's diverse community with beautiful abayas and cultural fashion expertise.",
			Address: catalog.Address{Street: "100 Queen Street West", City: "Toronto", State: "ON", Country: "Canada", ZipCode: "M5H 2N2",
				Coordinates: catalog.GeoPoint{Lat: 43.6532, Lng: -79.3832}},
			Contact: catalog.Contact{Phone: "+1-416-123-4567", Email: "toronto@farihasabaya.com", WhatsApp: "+1-647-123-4567"},
			Hours: catalog.WeeklyHours{
				Monday: "10:00 AM - 7:00 PM", Tuesday: "10:00 AM - 7:00 PM", Wednesday: "10:00 AM - 7:00 PM",
				Thursday: "10:00 AM - 8:00 PM", Friday: "10:00 AM - 8:00 PM", Saturday: "10:00 AM - 8:00 PM",
				Sunday: "12:00 PM - 5:00 PM",
			},
			TimeZone: "America/Toronto",
			Features: []string{"Multilingual Staff", "Cultural Consultation", "Community Events", "Group Appointments", "Seasonal Collections"},
			Rating:   4.6, ReviewCount: 98, Image: "/api/placeholder/600/400", IsActive: true,
		},
		{
			ID: "5", Name: "Fariha's Abaya Doha",
			Description: "Luxury boutique in Doha's pearl district, featuring exclusive designs and premium collections.",
			Address: catalog.Address{Street: "456 Pearl District", City: "Doha", State: "Doha", Country: "Qatar", ZipCode: "12345",
				Coordinates: catalog.GeoPoint{Lat: 25.2854, Lng: 51.5310}},
			Contact:  catalog.Contact{Phone: "+974-4-123-4567", Email: "doha@farihasabaya.com", WhatsApp: "+974-5512-3456"},
			Hours:    gulfHours(),
			TimeZone: "Asia/Qatar",
			Features: []string{"Luxury Consultation", "Exclusive Designs", "Premium Materials", "Royal Collection", "Bespoke Service"},
			Rating:   4.9, ReviewCount: 145, Image: "/api/placeholder/600/400", IsActive: true,
		},
	}
}

// SeedTestimonials is the initial set of verified reviews.
func SeedTestimonials() []catalog.Testimonial {
	const avatar = "/api/placeholder/64/64"
	return []catalog.Testimonial{
		{ID: "1", Name: "Fatima Al-Zahra", Location: "Dubai, UAE", Rating: 5, ProductID: "1", Verified: true, Date: day("2024-03-10"), Helpful: 24, Avatar: avatar,
			Comment: "The quality is exceptional! I've ordered three abayas now and each one exceeds my expectations. The fabric is luxurious and the fit is perfect."},
		{ID: "2", Name: "Sarah Ahmed", Location: "London, UK", Rating: 5, ProductID: "2", Verified: true, Date: day("2024-03-08"), Helpful: 18, Avatar: avatar,
			Comment: "Absolutely beautiful! The embroidery work is stunning and I received so many compliments. Fast shipping to the UK too."},
		{ID: "3", Name: "Khadija Rahman", Location: "Toronto, Canada", Rating: 4, ProductID: "3", Verified: true, Date: day("2024-03-05"), Helpful: 15, Avatar: avatar,
			Comment: "Great quality and beautiful design. The only minor issue was the length was slightly long for me, but the tailoring service fixed it perfectly."},
		{ID: "4", Name: "Aisha Hassan", Location: "New York, USA", Rating: 5, ProductID: "1", Verified: true, Date: day("2024-03-02"), Helpful: 31, Avatar: avatar,
			Comment: "I'm in love with my new abaya! The customer service was excellent and helped me choose the perfect size. Will definitely order again."},
		{ID: "5", Name: "Mariam Abdullah", Location: "Riyadh, Saudi Arabia", Rating: 5, ProductID: "6", Verified: true, Date: day("2024-02-28"), Helpful: 22, Avatar: avatar,
			Comment: "Traditional yet modern design. Perfect for special occasions. The fabric drapes beautifully and the attention to detail is remarkable."},
		{ID: "6", Name: "Zara Malik", Location: "Manchester, UK", Rating: 4, ProductID: "5", Verified: true, Date: day("2024-02-25"), Helpful: 12, Avatar: avatar,
			Comment: "Very pleased with my purchase. The abaya is comfortable for daily wear and the quality is impressive for the price point."},
		{ID: "7", Name: "Layla Mohammed", Location: "Sydney, Australia", Rating: 5, ProductID: "4", Verified: true, Date: day("2024-02-20"), Helpful: 28, Avatar: avatar,
			Comment: "Exceeded all my expectations! The packaging was beautiful and the abaya itself is a work of art. Thank you for bringing such elegance to my wardrobe."},
		{ID: "8", Name: "Nour Al-Hassan", Location: "Doha, Qatar", Rating: 5, ProductID: "3", Verified: true, Date: day("2024-02-18"), Helpful: 35, Avatar: avatar,
			Comment: "The burgundy abaya is absolutely stunning! Perfect for evening events. I've received so many compliments and requests about where I bought it."},
	}
}

// SeedInquiries is a small sample inbox for the back-office.
func SeedInquiries() []catalog.Inquiry {
	responded := day("2024-03-10")
	return []catalog.Inquiry{
		{ID: "1", Kind: catalog.KindContact, Name: "Sarah Ahmed", Email: "sarah@example.com", Subject: "Size chart inquiry",
			InquiryType: "size", Urgency: catalog.PriorityMedium, Priority: catalog.PriorityMedium, Status: catalog.StatusResolved,
			EstimatedResponse: catalog.EstimatedResponse(catalog.KindContact, catalog.PriorityMedium),
			SubmittedAt:       day("2024-03-10"), RespondedAt: &responded},
		{ID: "2", Kind: catalog.KindContact, Name: "Fatima Hassan", Email: "fatima@example.com", Subject: "Custom design request",
			InquiryType: "custom", Urgency: catalog.PriorityHigh, Priority: catalog.PriorityHigh, Status: catalog.StatusInProgress,
			EstimatedResponse: catalog.EstimatedResponse(catalog.KindContact, catalog.PriorityHigh),
			SubmittedAt:       day("2024-03-09")},
	}
}

// SeedSubscribers is the initial newsletter audience.
func SeedSubscribers() []catalog.Subscriber {
	return []catalog.Subscriber{
		{ID: "1", Email: "sarah@example.com", FirstName: "Sarah", SubscribedAt: day("2024-01-15"), IsActive: true,
			Preferences: catalog.Preferences{NewArrivals: true, Sales: true, ExclusiveOffers: true},
			Source:      "website", UnsubscribeToken: "token_sarah_123"},
		{ID: "2", Email: "fatima@example.com", FirstName: "Fatima", SubscribedAt: day("2024-02-20"), IsActive: true,
			Preferences: catalog.Preferences{NewArrivals: true, StyleGuides: true, ExclusiveOffers: true},
			Source:      "instagram", UnsubscribeToken: "token_fatima_456"},
	}
}
