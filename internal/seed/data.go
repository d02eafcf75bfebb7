package seed

type categorySeed struct {
	Name        string
	Description string
}

// productSeed references its category by index into the matching category list.
type productSeed struct {
	Name        string
	Category    int
	Price       string
	Description string
}

var sampleCategories = []categorySeed{
	{Name: "Electronics", Description: "Electronic devices and gadgets"},
	{Name: "Clothing", Description: "Apparel and fashion items"},
	{Name: "Books", Description: "Books and educational materials"},
	{Name: "Home & Garden", Description: "Home improvement and garden supplies"},
	{Name: "Sports", Description: "Sports equipment and accessories"},
	{Name: "Toys", Description: "Toys and games"},
	{Name: "Food", Description: "Food and beverages"},
	{Name: "Beauty", Description: "Beauty and personal care products"},
}

var sampleProducts = []productSeed{
	{Name: "Laptop Pro 15\"", Category: 0, Price: "1299.99", Description: "High-performance laptop with 16GB RAM"},
	{Name: "Smartphone X", Category: 0, Price: "899.99", Description: "Latest smartphone with 5G capability"},
	{Name: "Wireless Headphones", Category: 0, Price: "199.99", Description: "Noise-cancelling wireless headphones"},
	{Name: "Tablet 10\"", Category: 0, Price: "449.99", Description: "10-inch tablet with stylus support"},
	{Name: "Smart Watch", Category: 0, Price: "299.99", Description: "Fitness tracking smartwatch"},
	{Name: "T-Shirt Premium", Category: 1, Price: "29.99", Description: "100% cotton premium t-shirt"},
	{Name: "Jeans Classic", Category: 1, Price: "79.99", Description: "Classic fit denim jeans"},
	{Name: "Winter Jacket", Category: 1, Price: "149.99", Description: "Warm winter jacket with hood"},
	{Name: "Running Shoes", Category: 1, Price: "89.99", Description: "Comfortable running shoes"},
	{Name: "Dress Shirt", Category: 1, Price: "59.99", Description: "Formal dress shirt"},
	{Name: "Python Programming", Category: 2, Price: "49.99", Description: "Complete guide to Python programming"},
	{Name: "Data Science Handbook", Category: 2, Price: "69.99", Description: "Comprehensive data science guide"},
	{Name: "Web Development", Category: 2, Price: "39.99", Description: "Modern web development techniques"},
	{Name: "Machine Learning", Category: 2, Price: "79.99", Description: "Introduction to machine learning"},
	{Name: "Database Design", Category: 2, Price: "54.99", Description: "Database design principles"},
	{Name: "Coffee Maker", Category: 3, Price: "129.99", Description: "Automatic coffee maker"},
	{Name: "Garden Tools Set", Category: 3, Price: "89.99", Description: "Complete garden tools set"},
	{Name: "LED Desk Lamp", Category: 3, Price: "39.99", Description: "Adjustable LED desk lamp"},
	{Name: "Plant Pot Set", Category: 3, Price: "29.99", Description: "Set of 3 ceramic plant pots"},
	{Name: "Kitchen Knife Set", Category: 3, Price: "99.99", Description: "Professional kitchen knife set"},
	{Name: "Yoga Mat", Category: 4, Price: "29.99", Description: "Non-slip yoga mat"},
	{Name: "Dumbbells Set", Category: 4, Price: "79.99", Description: "Adjustable dumbbells set"},
	{Name: "Tennis Racket", Category: 4, Price: "149.99", Description: "Professional tennis racket"},
	{Name: "Basketball", Category: 4, Price: "29.99", Description: "Official size basketball"},
	{Name: "Golf Clubs Set", Category: 4, Price: "399.99", Description: "Complete golf clubs set"},
	{Name: "Building Blocks", Category: 5, Price: "49.99", Description: "500-piece building blocks set"},
	{Name: "Board Game", Category: 5, Price: "34.99", Description: "Strategy board game"},
	{Name: "Puzzle 1000pc", Category: 5, Price: "19.99", Description: "1000-piece jigsaw puzzle"},
	{Name: "Action Figure", Category: 5, Price: "24.99", Description: "Collectible action figure"},
	{Name: "RC Car", Category: 5, Price: "79.99", Description: "Remote control car"},
	{Name: "Organic Coffee", Category: 6, Price: "19.99", Description: "Premium organic coffee beans"},
	{Name: "Green Tea Set", Category: 6, Price: "29.99", Description: "Assorted green tea collection"},
	{Name: "Chocolate Box", Category: 6, Price: "24.99", Description: "Premium chocolate assortment"},
	{Name: "Honey Jar", Category: 6, Price: "14.99", Description: "Pure organic honey"},
	{Name: "Spice Set", Category: 6, Price: "34.99", Description: "International spice collection"},
	{Name: "Face Cream", Category: 7, Price: "39.99", Description: "Moisturizing face cream"},
	{Name: "Shampoo Set", Category: 7, Price: "29.99", Description: "Complete hair care set"},
	{Name: "Makeup Kit", Category: 7, Price: "59.99", Description: "Professional makeup kit"},
	{Name: "Perfume", Category: 7, Price: "89.99", Description: "Luxury fragrance perfume"},
	{Name: "Skincare Set", Category: 7, Price: "79.99", Description: "Complete skincare routine set"},
}

var userCategories = []categorySeed{
	{Name: "Electronics", Description: "Electronic devices and gadgets"},
	{Name: "Clothing", Description: "Apparel and fashion items"},
	{Name: "Books", Description: "Books and educational materials"},
	{Name: "Home & Garden", Description: "Home improvement and garden supplies"},
	{Name: "Sports", Description: "Sports equipment and accessories"},
}

var userProducts = []productSeed{
	{Name: "Laptop Dell XPS", Category: 0, Price: "1199.99", Description: "High-performance Dell laptop"},
	{Name: "iPhone 14", Category: 0, Price: "999.99", Description: "Latest iPhone model"},
	{Name: "Samsung TV 55\"", Category: 0, Price: "799.99", Description: "55-inch Smart TV"},
	{Name: "iPad Pro", Category: 0, Price: "899.99", Description: "Professional tablet"},
	{Name: "AirPods Pro", Category: 0, Price: "249.99", Description: "Wireless earbuds"},
	{Name: "Gaming Mouse", Category: 0, Price: "79.99", Description: "RGB gaming mouse"},
	{Name: "Mechanical Keyboard", Category: 0, Price: "149.99", Description: "Mechanical gaming keyboard"},
	{Name: "Monitor 27\"", Category: 0, Price: "399.99", Description: "27-inch 4K monitor"},
	{Name: "Nike Shoes", Category: 1, Price: "129.99", Description: "Running shoes"},
	{Name: "Adidas Jacket", Category: 1, Price: "89.99", Description: "Sports jacket"},
	{Name: "Leather Belt", Category: 1, Price: "49.99", Description: "Genuine leather belt"},
	{Name: "Wool Sweater", Category: 1, Price: "69.99", Description: "Warm wool sweater"},
	{Name: "Denim Shorts", Category: 1, Price: "39.99", Description: "Classic denim shorts"},
	{Name: "Polo Shirt", Category: 1, Price: "34.99", Description: "Cotton polo shirt"},
	{Name: "Winter Coat", Category: 1, Price: "159.99", Description: "Heavy winter coat"},
	{Name: "Sports Cap", Category: 1, Price: "19.99", Description: "Adjustable sports cap"},
	{Name: "JavaScript Guide", Category: 2, Price: "44.99", Description: "Complete JavaScript programming"},
	{Name: "React Handbook", Category: 2, Price: "39.99", Description: "React development guide"},
	{Name: "CSS Mastery", Category: 2, Price: "34.99", Description: "Advanced CSS techniques"},
	{Name: "Node.js Book", Category: 2, Price: "49.99", Description: "Server-side JavaScript"},
	{Name: "Python Cookbook", Category: 2, Price: "54.99", Description: "Python recipes and patterns"},
	{Name: "SQL Database", Category: 2, Price: "59.99", Description: "Database design and SQL"},
	{Name: "Web Security", Category: 2, Price: "69.99", Description: "Web application security"},
	{Name: "UI/UX Design", Category: 2, Price: "47.99", Description: "User interface design"},
	{Name: "Coffee Machine", Category: 3, Price: "199.99", Description: "Automatic coffee maker"},
	{Name: "Blender", Category: 3, Price: "79.99", Description: "High-speed blender"},
	{Name: "Toaster Oven", Category: 3, Price: "89.99", Description: "Countertop toaster oven"},
	{Name: "Vacuum Cleaner", Category: 3, Price: "249.99", Description: "Robot vacuum cleaner"},
	{Name: "Air Purifier", Category: 3, Price: "179.99", Description: "HEPA air purifier"},
	{Name: "Microwave Oven", Category: 3, Price: "129.99", Description: "Countertop microwave"},
	{Name: "Electric Kettle", Category: 3, Price: "49.99", Description: "Stainless steel kettle"},
	{Name: "Rice Cooker", Category: 3, Price: "69.99", Description: "Automatic rice cooker"},
	{Name: "Tennis Racket", Category: 4, Price: "129.99", Description: "Professional tennis racket"},
	{Name: "Football", Category: 4, Price: "29.99", Description: "Official size football"},
	{Name: "Basketball", Category: 4, Price: "24.99", Description: "Indoor basketball"},
	{Name: "Golf Balls", Category: 4, Price: "34.99", Description: "Pack of 12 golf balls"},
	{Name: "Baseball Bat", Category: 4, Price: "79.99", Description: "Aluminum baseball bat"},
	{Name: "Soccer Ball", Category: 4, Price: "39.99", Description: "Professional soccer ball"},
	{Name: "Hockey Stick", Category: 4, Price: "89.99", Description: "Composite hockey stick"},
	{Name: "Volleyball", Category: 4, Price: "29.99", Description: "Official volleyball"},
}
